package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soares-ari/HelpDesk-AI/internal/api"
)

var (
	uploadWait  bool
	docsRmForce bool
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage uploaded documents",
	Long: `Manage the PDF documents the assistant answers from.

Subcommands:
  list    List documents (default)
  get     Show one document
  upload  Upload a PDF
  rm      Delete a document

Examples:
  helpdesk docs
  helpdesk docs upload ./manual.pdf --wait
  helpdesk docs rm 42`,
	RunE: runDocsList,
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	RunE:  runDocsList,
}

var docsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsGet,
}

var docsUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a PDF document",
	Long: `Upload a PDF for ingestion. Only PDF files up to 50MB are accepted;
both checks run locally before anything is sent.

With --wait, polls until the server finishes processing the document.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocsUpload,
}

var docsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsRm,
}

func init() {
	docsUploadCmd.Flags().BoolVarP(&uploadWait, "wait", "w", false, "wait for processing to finish")
	docsRmCmd.Flags().BoolVarP(&docsRmForce, "force", "f", false, "skip confirmation")

	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsGetCmd)
	docsCmd.AddCommand(docsUploadCmd)
	docsCmd.AddCommand(docsRmCmd)
}

func runDocsList(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	docs, err := client.ListDocuments(context.Background())
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}

	if len(docs) == 0 {
		fmt.Println("No documents uploaded yet.")
		return nil
	}

	fmt.Printf("Documents (%d):\n\n", len(docs))
	for _, doc := range docs {
		fmt.Printf("- [%d] %s  %s  %d chunks  %s\n",
			doc.ID, doc.Filename, doc.Status, doc.TotalChunks,
			doc.UploadedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runDocsGet(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	doc, err := client.GetDocument(context.Background(), id)
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}

	fmt.Printf("%s (id %d)\n", doc.Filename, doc.ID)
	fmt.Printf("  Status:   %s\n", doc.Status)
	fmt.Printf("  Size:     %d bytes\n", doc.FileSize)
	fmt.Printf("  Type:     %s\n", doc.MimeType)
	fmt.Printf("  Chunks:   %d\n", doc.TotalChunks)
	fmt.Printf("  Uploaded: %s\n", doc.UploadedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func runDocsUpload(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	path := args[0]
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	// Gate locally before any network call.
	if err := api.ValidateUpload(info.Name(), "", info.Size()); err != nil {
		return err
	}

	resp, err := client.Upload(context.Background(), info.Name(), info.Size(), file)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}

	fmt.Printf("Uploaded %s (id %d, status %s)\n", resp.Filename, resp.DocumentID, resp.Status)
	if resp.Message != "" {
		fmt.Println(resp.Message)
	}

	if uploadWait {
		return RunProcessingWait(client, resp.DocumentID)
	}
	return nil
}

func runDocsRm(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if !docsRmForce {
		ok, err := confirm(fmt.Sprintf("Delete document %d? [y/N]: ", id))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := client.DeleteDocument(context.Background(), id); err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("document %d not found", id)
		}
		return fmt.Errorf("delete document: %w", err)
	}

	fmt.Printf("Deleted document %d\n", id)
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// confirm asks a yes/no question on stdin.
func confirm(prompt string) (bool, error) {
	fmt.Print(prompt)

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read input: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))

	return response == "y" || response == "yes", nil
}
