package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/auditdesk/auditdesk/gateway"
)

func invoiceCommands(d *deskInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "inspect and act on processed invoices",
	}

	cmd.AddCommand(listInvoicesCommand(d))
	cmd.AddCommand(decisionCommand(d, "approve", gateway.ActionApprove))
	cmd.AddCommand(decisionCommand(d, "reject", gateway.ActionReject))
	cmd.AddCommand(rerunCommand(d))
	cmd.AddCommand(uploadCommand(d))
	cmd.AddCommand(incomingCommand(d))
	cmd.AddCommand(processCommand(d))

	return cmd
}

func listInvoicesCommand(d *deskInstance) *cobra.Command {
	var search string
	var queue string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "list the review queue and the archive",
		Run: func(cmd *cobra.Command, args []string) {
			if err := d.desk.Repository().Refresh(cmd.Context()); err != nil {
				log.Fatalf("Error fetching invoices: %v", err)
			}

			view := d.desk.Dashboard(search)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "QUEUE\tINVOICE\tVENDOR\tAMOUNT\tSTATUS")
			if queue == "" || queue == "review" {
				for _, inv := range view.Review {
					fmt.Fprintf(w, "review\t%s\t%s\t%s\t%s\n", inv.InvoiceID, inv.VendorName, inv.Amount, inv.Status)
				}
			}
			if queue == "" || queue == "archive" {
				for _, inv := range view.Archive {
					fmt.Fprintf(w, "archive\t%s\t%s\t%s\t%s\n", inv.InvoiceID, inv.VendorName, inv.Amount, inv.Status)
				}
			}
			_ = w.Flush()

			fmt.Printf("\ntotal: %d  in review: %d  approval rate: %d%%\n",
				view.Metrics.Total, len(view.Review), view.Metrics.ApprovalRate)
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "narrow both queues by invoice id or summary")
	cmd.Flags().StringVar(&queue, "queue", "", "show only one queue: review or archive")

	return cmd
}

func decisionCommand(d *deskInstance, use, action string) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   use + " <invoice-id>",
		Short: use + " one invoice",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := d.desk.SubmitAction(cmd.Context(), args[0], action, notes); err != nil {
				log.Fatalf("Error submitting decision: %v", err)
			}
			fmt.Printf("%s recorded for %s\n", action, args[0])
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "free-text notes attached to the decision")

	return cmd
}

func rerunCommand(d *deskInstance) *cobra.Command {
	var dataJSON string

	cmd := &cobra.Command{
		Use:   "rerun <invoice-id>",
		Short: "resubmit corrected extracted data for re-validation",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var updated map[string]interface{}
			if err := json.Unmarshal([]byte(dataJSON), &updated); err != nil {
				log.Fatalf("Error parsing --data: %v", err)
			}

			result, err := d.desk.RerunValidation(cmd.Context(), args[0], updated)
			if err != nil {
				log.Fatalf("Error rerunning validation: %v", err)
			}
			printJSON(result)
		},
	}
	cmd.Flags().StringVar(&dataJSON, "data", "{}", "corrected extracted data as a JSON object")

	return cmd
}

func uploadCommand(d *deskInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "push one invoice file through the processing pipeline",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			f, err := os.Open(args[0])
			if err != nil {
				log.Fatalf("Error opening file: %v", err)
			}
			defer func() {
				_ = f.Close()
			}()

			result, err := d.desk.Upload(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				log.Fatalf("Error uploading: %v", err)
			}
			printJSON(result)
		},
	}

	return cmd
}

func incomingCommand(d *deskInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "incoming",
		Short: "list files waiting in the pipeline's intake directory",
		Run: func(cmd *cobra.Command, args []string) {
			files, err := d.desk.Gateway().IncomingFiles(cmd.Context())
			if err != nil {
				log.Fatalf("Error listing incoming files: %v", err)
			}
			for _, f := range files {
				fmt.Println(f)
			}
		},
	}

	return cmd
}

func processCommand(d *deskInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <filename>",
		Short: "process a file already in the intake directory",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result, err := d.desk.ProcessExisting(cmd.Context(), args[0])
			if err != nil {
				log.Fatalf("Error processing file: %v", err)
			}
			printJSON(result)
		},
	}

	return cmd
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		log.Fatalf("Error printing result: %v", err)
	}
	fmt.Println(string(data))
}
