package cli

import (
	"fmt"
	"path/filepath"

	"github.com/niksuyko/habits-app/internal/backup"
)

type BackupCmd struct {
	List bool `short:"l" help:"List available backups instead of creating one."`
}

func (c *BackupCmd) Run(ctx *Context) error {
	m := backup.NewManager(ctx.Store.Path())

	if c.List {
		backups, err := m.List()
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			fmt.Println("No backups found")
			return nil
		}
		fmt.Println(headerStyle.Render("Backups:"))
		for _, b := range backups {
			fmt.Printf("  %s  %s  %d bytes\n",
				b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), b.Size)
		}
		return nil
	}

	path, err := m.Create()
	if err != nil {
		return err
	}
	fmt.Printf("Created backup: %s\n", path)
	return nil
}

type RestoreCmd struct {
	Backup string `arg:"" optional:"" help:"Backup file to restore. Omit for the most recent."`
}

func (c *RestoreCmd) Run(ctx *Context) error {
	m := backup.NewManager(ctx.Store.Path())

	path := c.Backup
	if path == "" {
		backups, err := m.List()
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			return fmt.Errorf("no backups available to restore")
		}
		path = backups[0].Path
	}

	if err := m.Restore(path); err != nil {
		return err
	}
	fmt.Printf("Restored database from: %s\n", filepath.Base(path))
	return nil
}
