package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"airbnb-rooms-scraper/models"
	"airbnb-rooms-scraper/scraper/airbnb"
	"airbnb-rooms-scraper/services"
)

func newParseCommand() *cobra.Command {
	var roomURL string
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Normalize a saved room page (HTML) or raw room document (JSON) without fetching",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), nil)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			doc, err := decodeDocument(data)
			if err != nil {
				return err
			}

			record, normErr := services.NewNormalizer(logger).Normalize(doc, roomURL)
			if err := writeRecord(cmd.OutOrStdout(), record); err != nil {
				return err
			}
			return normErr
		},
	}
	cmd.Flags().StringVar(&roomURL, "url", "", "room URL the document was taken from (required)")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

// decodeDocument accepts a full room page or an already extracted document.
func decodeDocument(data []byte) (models.RawListingDocument, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '<' {
		return airbnb.ParseRoomPage(bytes.NewReader(trimmed))
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var doc models.RawListingDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid room document: %w", err)
	}
	return doc, nil
}

func writeRecord(w io.Writer, record *models.ListingRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	return nil
}
