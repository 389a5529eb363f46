package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// chatCommands returns the `chat` command, a line-based REPL against the
// retrieval-augmented audit assistant. Sends are serialized by the session,
// so the loop simply blocks until each answer lands.
func chatCommands(d *deskInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "chat with the audit assistant",
		Run: func(cmd *cobra.Command, args []string) {
			session := d.desk.Chat()
			for _, m := range session.Messages() {
				fmt.Printf("%s: %s\n", m.Role, m.Content)
			}

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					break
				}

				reply, err := session.Send(cmd.Context(), line)
				if err != nil {
					log.Printf("Error: %v", err)
					continue
				}
				fmt.Println(reply)
			}
		},
	}

	return cmd
}
