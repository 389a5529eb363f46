/*
Copyright 2025 AuditDesk Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/auditdesk/auditdesk"
	"github.com/auditdesk/auditdesk/config"
	"github.com/auditdesk/auditdesk/internal/notification"
)

// AuditDeskCLI wraps the root Cobra command.
type AuditDeskCLI struct {
	cmd *cobra.Command
}

// deskInstance holds the workflow core and its configuration, shared by all
// subcommands once the pre-run hook has built them.
type deskInstance struct {
	desk *auditdesk.AuditDesk
	cnf  *config.Configuration
}

// recoverPanic logs any panic during execution and exits with an error status.
func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun loads configuration and builds the AuditDesk instance before any
// command runs.
func preRun(app *deskInstance, configFile *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.InitConfig(*configFile)
		if err != nil {
			log.Fatal("error loading config", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		desk, err := auditdesk.NewAuditDesk(cnf)
		if err != nil {
			notification.NotifyError(err)
			log.Fatal(err)
		}

		app.desk = desk
		app.cnf = cnf

		return nil
	}
}

// NewCLI assembles the command-line interface: the server, the invoice
// operations, the chat REPL and the config dump.
func NewCLI() *AuditDeskCLI {
	var configFile string
	d := &deskInstance{}

	var rootCmd = &cobra.Command{
		Use:   "auditdesk",
		Short: "Invoice auditing dashboard",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./auditdesk.json", "Configuration file for auditdesk")

	rootCmd.PersistentPreRunE = preRun(d, &configFile)

	rootCmd.AddCommand(serverCommands(d))
	rootCmd.AddCommand(invoiceCommands(d))
	rootCmd.AddCommand(chatCommands(d))
	rootCmd.AddCommand(configCommands())

	return &AuditDeskCLI{cmd: rootCmd}
}

func (w AuditDeskCLI) executeCLI() {
	if err := w.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
