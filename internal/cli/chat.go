package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soares-ari/HelpDesk-AI/internal/api"
)

var (
	chatConversationID int64
	convRmForce        bool
)

var chatCmd = &cobra.Command{
	Use:   "chat <question>",
	Short: "Ask a question about your documents",
	Long: `Ask a question and get an answer grounded in your uploaded documents,
with citations to the source passages.

Pass --conversation to continue an existing conversation; without it a new
one is started and its id printed.

Examples:
  helpdesk chat "What does the warranty cover?"
  helpdesk chat "And for how long?" --conversation 7`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

var conversationsCmd = &cobra.Command{
	Use:     "conversations",
	Aliases: []string{"convs"},
	Short:   "Manage conversations",
	Long: `List, replay, or delete chat conversations.

Subcommands:
  list      List conversations (default)
  messages  Show a conversation's messages
  rm        Delete a conversation`,
	RunE: runConversationsList,
}

var conversationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversations",
	RunE:  runConversationsList,
}

var conversationsMessagesCmd = &cobra.Command{
	Use:   "messages <id>",
	Short: "Show a conversation's messages",
	Args:  cobra.ExactArgs(1),
	RunE:  runConversationsMessages,
}

var conversationsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  runConversationsRm,
}

func init() {
	chatCmd.Flags().Int64VarP(&chatConversationID, "conversation", "c", 0, "conversation id to continue")
	conversationsRmCmd.Flags().BoolVarP(&convRmForce, "force", "f", false, "skip confirmation")

	conversationsCmd.AddCommand(conversationsListCmd)
	conversationsCmd.AddCommand(conversationsMessagesCmd)
	conversationsCmd.AddCommand(conversationsRmCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	question := args[0]

	var conversationID *int64
	if chatConversationID != 0 {
		conversationID = &chatConversationID
	}

	resp, err := client.SendMessage(context.Background(), question, conversationID)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	fmt.Println(resp.Message)

	if len(resp.Citations) > 0 {
		fmt.Printf("\nSources:\n")
		for _, cite := range resp.Citations {
			fmt.Printf("- %s (%.1f%% match)\n", cite.Metadata.DocumentName, cite.SimilarityScore*100)
			if verbose {
				fmt.Printf("  %s\n", cite.Content)
			}
		}
	}

	if conversationID == nil {
		fmt.Printf("\nConversation %d started. Continue with --conversation %d\n",
			resp.ConversationID, resp.ConversationID)
	}
	return nil
}

func runConversationsList(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	convs, err := client.ListConversations(context.Background())
	if err != nil {
		return fmt.Errorf("list conversations: %w", err)
	}

	if len(convs) == 0 {
		fmt.Println("No conversations yet.")
		return nil
	}

	fmt.Printf("Conversations (%d):\n\n", len(convs))
	for _, conv := range convs {
		fmt.Printf("- [%d] %s  %d messages  %s\n",
			conv.ID, conv.Title, conv.MessageCount, conv.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func runConversationsMessages(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	msgs, err := client.GetMessages(context.Background(), id)
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("conversation %d not found", id)
		}
		return fmt.Errorf("get messages: %w", err)
	}

	for _, msg := range msgs {
		role := "You"
		if msg.Role == api.RoleAssistant {
			role = "Assistant"
		}
		fmt.Printf("[%s] %s\n%s\n\n", msg.CreatedAt.Format("15:04"), role, msg.Content)
	}
	return nil
}

func runConversationsRm(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if !convRmForce {
		ok, err := confirm(fmt.Sprintf("Delete conversation %d? [y/N]: ", id))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := client.DeleteConversation(context.Background(), id); err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("conversation %d not found", id)
		}
		return fmt.Errorf("delete conversation: %w", err)
	}

	fmt.Printf("Deleted conversation %d\n", id)
	return nil
}
