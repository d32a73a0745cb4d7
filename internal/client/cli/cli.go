package cli

import (
	"fmt"
	"os"

	"github.com/benchtop/labsync/internal/client/data"
	"github.com/benchtop/labsync/internal/client/queue"
	syncengine "github.com/benchtop/labsync/internal/client/sync"
)

// Cli wires the client commands to their services.
type Cli struct {
	dataService *data.Service
	engine      *syncengine.Engine
	queue       *queue.Queue
}

func New(dataService *data.Service, engine *syncengine.Engine, q *queue.Queue) *Cli {
	return &Cli{
		dataService: dataService,
		engine:      engine,
		queue:       q,
	}
}

// PrintUsage prints the command summary.
func PrintUsage() {
	fmt.Fprintln(os.Stderr, `Usage: labsync <command> [arguments]

Entity commands:
  put <type> [id] <json>    create or update an entity
  get <type> <id>           show one entity
  list <type>               list live entities of a type
  delete <type> <id>        delete an entity
  attach <type> <id> <file> queue attachment metadata for the next sync

Sync commands:
  sync                      run one pull/push cycle now
  status                    show cursor and queue state
  queue [dead|manual]       list queued mutations
  resolve <id> retry <base> resubmit a conflicted mutation against a new base version
  resolve <id> drop         discard a conflicted or dead mutation

Entity types: instrument, method, qc_record, inventory_item

Configuration via environment: LABSYNC_SERVER_URL, LABSYNC_CLIENT_DB,
LABSYNC_CLIENT_ID, LABSYNC_SYNC_INTERVAL, LABSYNC_BATCH_SIZE`)
}
