// Command inspect dumps the realtime store as a table: spaces with
// their recording state, recording sessions, and conversation
// membership keys. Read-only; safe to point at a store owned by a
// running server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"

	"github.com/arunpravin125/ConnectHub-sub001/domain"
)

func main() {
	dbPath := flag.String("db", "/tmp/badger", "Path to badger DB")
	prefix := flag.String("prefix", "space:", "Prefix to scan (space:, recsession:, conv:)")
	flag.Parse()

	db, err := openReadOnly(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Kind", "Status", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())
			err := item.Value(func(value []byte) error {
				table.Append(describe(key, value))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

func describe(key string, value []byte) []string {
	switch {
	case strings.HasPrefix(key, "space:"):
		var space domain.Space
		if err := json.Unmarshal(value, &space); err != nil {
			return []string{key, "SPACE", "?", fmt.Sprintf("unmarshal: %v", err)}
		}
		detail := fmt.Sprintf("host=%s speakers=%d listeners=%d",
			shortID(space.HostID), len(space.Speakers), len(space.Listeners))
		if space.IsRecording {
			detail += " recording=" + shortID(space.ActiveRecordingID)
		}
		return []string{key, "SPACE", string(space.Status), detail}

	case strings.HasPrefix(key, "recsession:"):
		var session domain.RecordingSession
		if err := json.Unmarshal(value, &session); err != nil {
			return []string{key, "SESSION", "?", fmt.Sprintf("unmarshal: %v", err)}
		}
		detail := fmt.Sprintf("space=%s by=%s started=%s",
			shortID(session.SpaceID), shortID(session.StartedBy), session.StartedAt.Format("15:04:05"))
		if session.PlaybackURL != "" {
			detail += " url=" + session.PlaybackURL
		}
		return []string{key, "SESSION", string(session.Status), detail}

	case strings.HasPrefix(key, "conv:"):
		return []string{key, "MEMBER", "-", fmt.Sprintf("%d bytes", len(value))}

	default:
		return []string{key, "RAW", "-", fmt.Sprintf("%d bytes", len(value))}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func openReadOnly(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)
	return badger.Open(opts)
}
