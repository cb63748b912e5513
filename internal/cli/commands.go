package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/akolanti/GoPDFChat/internal/domain/chatModel"
	"github.com/akolanti/GoPDFChat/internal/mcptools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

// userError keeps internal detail out of the terminal, the log has it.
func userError(err error) error {
	return errors.New(chatModel.UserMessage(err))
}

func newExtractCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "extract FILE",
		Short: "Print the plain text of a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := opts.container.ExtractFile(cmd.Context(), args[0])
			if err != nil {
				return userError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc.Text)
			return nil
		},
	}
}

func newAskCmd(opts *rootOptions) *cobra.Command {
	var question string

	cmd := &cobra.Command{
		Use:   "ask FILE",
		Short: "Answer one question about a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := opts.container.ExtractFile(cmd.Context(), args[0])
			if err != nil {
				return userError(err)
			}
			session, err := chatModel.NewSession(doc.Text)
			if err != nil {
				return userError(err)
			}
			session, err = opts.container.RAGService.Ask(cmd.Context(), session, question)
			if err != nil {
				return userError(err)
			}
			answer, _ := session.LastAnswer()
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}
	cmd.Flags().StringVarP(&question, "question", "q", "", "the question to ask")
	_ = cmd.MarkFlagRequired("question")
	return cmd
}

func newChatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat FILE",
		Short: "Start an interactive conversation about a PDF",
		Long: `Reads one question per line from stdin and prints each answer.
Previous questions and answers are sent along with every new question.
Type "exit" or "quit", or close stdin, to stop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			doc, err := opts.container.ExtractFile(cmd.Context(), args[0])
			if err != nil {
				return userError(err)
			}
			session, err := chatModel.NewSession(doc.Text)
			if err != nil {
				return userError(err)
			}
			fmt.Fprintf(out, "Loaded %s. Ask a question about it.\n", doc.Name)

			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					fmt.Fprintln(out)
					return scanner.Err()
				}
				question := strings.TrimSpace(scanner.Text())
				switch question {
				case "":
					continue
				case "exit", "quit":
					return nil
				}

				next, err := opts.container.RAGService.Ask(cmd.Context(), session, question)
				if err != nil {
					// the session keeps its history, the user can ask again
					fmt.Fprintln(out, chatModel.UserMessage(err))
					continue
				}
				session = next
				answer, _ := session.LastAnswer()
				fmt.Fprintln(out, answer)
			}
		},
	}
}

func newMCPCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the extract and ask tools over stdio for MCP clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := mcptools.NewServer(mcptools.NewTools(opts.container), Version)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
