//go:build fuse

package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/hyliodon/blockwire"
	"github.com/hyliodon/blockwire/cgfx"
)

var mountCmd = &cobra.Command{
	Use:   "mount <file> <dir>",
	Short: "Mount a container's block layout read-only at dir for inspection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		ctx := blockwire.NewWriteCtx[cgfx.Category]()
		var npc cgfx.Npc
		r := blockwire.NewByteBufferFrom(data)
		if err := npc.ReadUnboxed(r, cgfx.Driver{}); err != nil {
			return fmt.Errorf("read: %w", err)
		}
		if err := npc.WriteUnboxed(ctx, cgfx.Driver{}); err != nil {
			return fmt.Errorf("re-encode for offsets: %w", err)
		}
		var offsets []uint64
		if _, err := blockwire.Assemble(ctx, cgfx.Driver{}, blockwire.WithBlockOffsets(&offsets)); err != nil {
			return fmt.Errorf("assemble for offsets: %w", err)
		}

		srv, err := cgfx.Mount(args[1], data, offsets)
		if err != nil {
			return fmt.Errorf("mount: %w", err)
		}
		fmt.Printf("mounted at %s, press Ctrl-C to unmount\n", args[1])

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		<-sig
		return srv.Unmount()
	},
}

func init() {
	rootCmd.AddCommand(mountCmd)
}
