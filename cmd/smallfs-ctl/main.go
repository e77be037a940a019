// Command smallfs-ctl queries a running smallfs inspection server and
// inspects volume images offline.
package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/example/smallfs/pkg/client"
	"github.com/example/smallfs/pkg/device"
	"github.com/example/smallfs/pkg/fs"
	"github.com/example/smallfs/pkg/layout"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "smallfs-ctl",
		Short:        "Inspect smallfs volumes",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("server", client.DefaultConfig().ServerAddress, "Inspection server address")
	root.PersistentFlags().Duration("timeout", 10*time.Second, "Per-call timeout")

	root.AddCommand(statCmd(), lsCmd(), catCmd(), getfattrCmd(), dumpCmd())
	return root
}

// connect builds a client from the persistent flags.
func connect(cmd *cobra.Command) (*client.Client, error) {
	config := client.DefaultConfig()
	config.ServerAddress, _ = cmd.Flags().GetString("server")
	config.Timeout, _ = cmd.Flags().GetDuration("timeout")
	return client.NewClient(config)
}

func statCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stat PATH",
		Short: "Show the attributes of a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := connect(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			info, err := c.GetAttr(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "  File: %s\n", args[0])
			fmt.Fprintf(out, "  Size: %d (%s)\n", info.Size, humanize.Bytes(uint64(info.Size)))
			fmt.Fprintf(out, "  Type: %s\n", info.Type)
			fmt.Fprintf(out, "  Mode: %04o\n", uint32(info.Mode))
			fmt.Fprintf(out, " Links: %d\n", info.Nlink)
			fmt.Fprintf(out, "Modify: %s (%s)\n", info.ModifyTime.Format(time.RFC3339), humanize.Time(info.ModifyTime))
			return nil
		},
	}
}

func lsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [PATH]",
		Short: "List a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "/"
			if len(args) == 1 {
				dir = args[0]
			}

			c, err := connect(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			entries, err := c.ReadDir(cmd.Context(), dir)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, e := range entries {
				size := "-"
				if e.Type == fs.FileTypeRegular {
					info, err := c.GetAttr(cmd.Context(), strings.TrimSuffix(dir, "/")+"/"+e.Name)
					if err != nil {
						return err
					}
					size = humanize.Bytes(uint64(info.Size))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Type, size, e.Name)
			}
			return w.Flush()
		},
	}
}

func catCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat PATH",
		Short: "Print a window of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, _ := cmd.Flags().GetInt64("offset")
			length, _ := cmd.Flags().GetInt("length")

			c, err := connect(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			out := cmd.OutOrStdout()
			for length > 0 {
				data, err := c.Read(cmd.Context(), args[0], offset, length)
				if err != nil {
					return err
				}
				if len(data) == 0 {
					break
				}
				if _, err := out.Write(data); err != nil {
					return err
				}
				offset += int64(len(data))
				length -= len(data)
			}
			return nil
		},
	}
	cmd.Flags().Int64("offset", 0, "Byte offset to start at")
	cmd.Flags().Int("length", 4096, "Number of bytes to print")
	return cmd
}

func getfattrCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "getfattr PATH",
		Short: "Print extended attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")

			c, err := connect(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			names := []string{name}
			if name == "" {
				if names, err = c.ListXattr(cmd.Context(), args[0]); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# file: %s\n", args[0])
			for _, n := range names {
				value, err := c.GetXattr(cmd.Context(), args[0], n)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s=%q\n", n, value)
			}
			return nil
		},
	}
	cmd.Flags().StringP("name", "n", "", "Attribute to print; all when empty")
	return cmd
}

func dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump DEVICE",
		Short: "Decode the directory of a volume image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := device.OpenReadOnly(args[0])
			if err != nil {
				return err
			}
			defer dev.Close()

			sectors, err := dev.Sectors()
			if err != nil {
				return err
			}
			mapSector, err := dev.ReadSector(layout.MapSector)
			if err != nil {
				return err
			}
			allocMap, err := layout.DecodeAllocationMap(mapSector)
			if err != nil {
				return err
			}
			dirSector, err := dev.ReadSector(layout.DirectorySector)
			if err != nil {
				return err
			}
			dir, err := layout.DecodeDirectory(dirSector)
			if err != nil {
				return err
			}

			nonzero := 0
			for _, b := range allocMap.Bytes() {
				if b != 0 {
					nonzero++
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "device:  %s (%d sectors, %s)\n", dev.Path(), sectors,
				humanize.Bytes(uint64(sectors)*device.SectorSize))
			fmt.Fprintf(out, "map:     %d non-zero bytes\n", nonzero)
			fmt.Fprintf(out, "entries: %d\n", dir.Len())

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, e := range dir.Entries() {
				fmt.Fprintf(w, "%s\t%v\n", e.Name, e.Allocation.Sectors())
			}
			return w.Flush()
		},
	}
}
