package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/operation"
	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/textfmt"
)

var sendCmd = &cobra.Command{
	Use:   "send [+NUMBER] [text]",
	Short: "Send a text message (shortcut for call whatsappMessage sendText)",
	Example: `  kapso-mcp send --to +15551234567 --text "hello"
  kapso-mcp send +15551234567 "hello"
  kapso-mcp send --conversation conv_123 --text "following up"`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		to, _ := cmd.Flags().GetString("to")
		text, _ := cmd.Flags().GetString("text")
		conversation, _ := cmd.Flags().GetString("conversation")

		// Positional form: send +NUMBER "message"
		for _, arg := range args {
			if to == "" && strings.HasPrefix(arg, "+") {
				to = arg
			} else if text == "" {
				text = arg
			}
		}
		if (to == "" && conversation == "") || text == "" {
			return fmt.Errorf("usage: kapso-mcp send --to +NUMBER --text \"message\"")
		}

		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		client, err := a.client()
		if err != nil {
			return err
		}

		if md, _ := cmd.Flags().GetBool("markdown"); md {
			text = textfmt.FromMarkdown(text)
		}
		var items []operation.Fields
		for _, part := range textfmt.Split(text, textfmt.MaxLen) {
			items = append(items, operation.Fields{"phone": to, "conversationId": conversation, "body": part})
		}

		return runAndPrint(cmd, a.executor(cmd, client), operation.ResourceWhatsAppMessage, "sendText", items)
	},
}

func init() {
	sendCmd.Flags().String("to", "", "recipient phone number in international format")
	sendCmd.Flags().String("conversation", "", "existing conversation ID")
	sendCmd.Flags().String("text", "", "message body; longer bodies are sent as several messages")
	sendCmd.Flags().Bool("markdown", false, "convert Markdown emphasis to WhatsApp formatting")
	addRunFlags(sendCmd)
	rootCmd.AddCommand(sendCmd)
}
