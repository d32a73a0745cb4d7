package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/benchtop/labsync/internal/models"
)

// RunSync performs one pull/push cycle.
func (c *Cli) RunSync(ctx context.Context) error {
	fmt.Println("Starting synchronization...")

	report, err := c.engine.RunOnce(ctx)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Println("Synchronization completed:")
	fmt.Printf("  Pulled:   %d record(s)\n", report.Pulled)
	fmt.Printf("  Pushed:   %d mutation(s) accepted\n", report.Accepted)

	for _, rejected := range report.Rejected {
		fmt.Printf("  Rejected: %s (%s): %s\n", rejected.MutationID, rejected.EntityKey, rejected.Reason)
	}
	for _, conflict := range report.Conflicts {
		fmt.Printf("  Conflict: %s (%s) resolved for %s\n", conflict.MutationID, conflict.EntityKey, conflict.Resolution)
	}
	return nil
}

// RunStatus shows the engine state and queue counts.
func (c *Cli) RunStatus(ctx context.Context) error {
	fmt.Printf("Engine state: %s\n", c.engine.State())

	if report := c.engine.LastReport(); report != nil {
		fmt.Printf("Last cycle:   %s (pulled %d, accepted %d)\n",
			report.FinishedAt.Format("2006-01-02 15:04:05"), report.Pulled, report.Accepted)
	}

	n, err := c.queue.Len(ctx)
	if err != nil {
		return err
	}
	dead, err := c.queue.Dead(ctx)
	if err != nil {
		return err
	}
	manual, err := c.queue.AwaitingManual(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Queued:       %d mutation(s)\n", n)
	fmt.Printf("Dead:         %d\n", len(dead))
	fmt.Printf("Manual:       %d awaiting resolution\n", len(manual))
	return nil
}

// RunQueue lists queued mutations, optionally filtered.
// Usage: labsync queue [dead|manual]
func (c *Cli) RunQueue(ctx context.Context, args []string) error {
	var (
		mutations []*models.QueuedMutation
		err       error
	)

	filter := ""
	if len(args) > 0 {
		filter = args[0]
	}

	switch filter {
	case "":
		mutations, err = c.queue.List(ctx)
	case "dead":
		mutations, err = c.queue.Dead(ctx)
	case "manual":
		mutations, err = c.queue.AwaitingManual(ctx)
	default:
		return fmt.Errorf("unknown queue filter %q, use dead or manual", filter)
	}
	if err != nil {
		return err
	}

	if len(mutations) == 0 {
		fmt.Println("Queue is empty.")
		return nil
	}

	for _, m := range mutations {
		status := string(m.Status)
		if m.AwaitingManual {
			status += " (awaiting manual resolution)"
		}
		fmt.Printf("%s  %s %s  base=%d attempts=%d  %s\n",
			m.ID, m.Operation, m.EntityKey(), m.BaseVersion, m.AttemptCount, status)
		if m.FailReason != "" {
			fmt.Printf("    reason: %s\n", m.FailReason)
		}
	}
	return nil
}

// RunResolve settles a conflicted or dead mutation.
// Usage: labsync resolve <id> retry <base-version> | drop
func (c *Cli) RunResolve(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: labsync resolve <id> retry <base-version> | drop")
	}

	id, action := args[0], args[1]

	switch action {
	case "retry":
		if len(args) < 3 {
			return fmt.Errorf("usage: labsync resolve <id> retry <base-version>")
		}
		baseVersion, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid base version %q", args[2])
		}
		if err := c.queue.Resubmit(ctx, id, baseVersion); err != nil {
			return err
		}
		fmt.Printf("Mutation %s will be resubmitted against version %d\n", id, baseVersion)

	case "drop":
		if err := c.queue.Discard(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Mutation %s discarded\n", id)

	default:
		return fmt.Errorf("unknown resolve action %q, use retry or drop", action)
	}
	return nil
}
