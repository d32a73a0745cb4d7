package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/benchtop/labsync/internal/models"
)

// RunPut creates or updates an entity from a JSON payload.
// Usage: labsync put <type> [id] <json>
func (c *Cli) RunPut(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: labsync put <type> [id] <json>")
	}

	entityType, err := models.ParseEntityType(args[0])
	if err != nil {
		return err
	}

	var entityID, payload string
	if len(args) >= 3 {
		entityID, payload = args[1], args[2]
	} else {
		payload = args[1]
	}

	id, err := c.dataService.Put(ctx, entityType, entityID, json.RawMessage(payload))
	if err != nil {
		return err
	}

	fmt.Printf("Saved %s/%s (queued for sync)\n", entityType, id)
	return nil
}

// RunGet prints one entity.
// Usage: labsync get <type> <id>
func (c *Cli) RunGet(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: labsync get <type> <id>")
	}

	entityType, err := models.ParseEntityType(args[0])
	if err != nil {
		return err
	}

	record, err := c.dataService.Get(ctx, entityType, args[1])
	if err != nil {
		return err
	}

	printRecord(record)
	return nil
}

// RunList prints all live entities of a type.
// Usage: labsync list <type>
func (c *Cli) RunList(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: labsync list <type>")
	}

	entityType, err := models.ParseEntityType(args[0])
	if err != nil {
		return err
	}

	records, err := c.dataService.List(ctx, entityType)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Printf("No %s records found.\n", entityType)
		return nil
	}

	fmt.Printf("Found %d %s record(s):\n\n", len(records), entityType)
	for _, record := range records {
		printRecord(record)
		fmt.Println()
	}
	return nil
}

// RunDelete deletes an entity.
// Usage: labsync delete <type> <id>
func (c *Cli) RunDelete(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: labsync delete <type> <id>")
	}

	entityType, err := models.ParseEntityType(args[0])
	if err != nil {
		return err
	}

	if err := c.dataService.Delete(ctx, entityType, args[1]); err != nil {
		return err
	}

	fmt.Printf("Deleted %s/%s (queued for sync)\n", entityType, args[1])
	return nil
}

// RunAttach queues attachment metadata for an entity.
// Usage: labsync attach <type> <id> <file>
func (c *Cli) RunAttach(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: labsync attach <type> <id> <file>")
	}

	entityType, err := models.ParseEntityType(args[0])
	if err != nil {
		return err
	}

	info, err := os.Stat(args[2])
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	meta := models.AttachmentMeta{
		EntityType: entityType,
		EntityID:   args[1],
		Filename:   filepath.Base(args[2]),
		MimeType:   mime.TypeByExtension(filepath.Ext(args[2])),
		Size:       info.Size(),
	}
	if meta.MimeType == "" {
		meta.MimeType = "application/octet-stream"
	}

	if err := c.dataService.AttachFile(ctx, meta); err != nil {
		return err
	}

	fmt.Printf("Attachment %s queued for %s/%s\n", meta.Filename, entityType, args[1])
	return nil
}

func printRecord(record *models.EntityRecord) {
	fmt.Printf("%s/%s (version %d, updated %s)\n",
		record.EntityType, record.EntityID, record.Version,
		record.UpdatedAt.Format("2006-01-02 15:04:05"))

	var pretty map[string]any
	if err := json.Unmarshal(record.Payload, &pretty); err == nil {
		out, err := json.MarshalIndent(pretty, "  ", "  ")
		if err == nil {
			fmt.Printf("  %s\n", out)
			return
		}
	}
	fmt.Printf("  %s\n", record.Payload)
}
