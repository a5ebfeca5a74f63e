package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	grpcapi "todo-notes/internal/api/grpc"
	"todo-notes/internal/model"
)

var flagWatchEntities []string

func init() {
	watchCmd.Flags().StringSliceVarP(&flagWatchEntities, "entity", "e", nil, "todo and/or note, empty means both")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print change feed events until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := dialFeed()
		if err != nil {
			return err
		}
		defer conn.Close()

		req := &grpcapi.WatchRequest{}
		for _, e := range flagWatchEntities {
			req.Entities = append(req.Entities, model.Entity(e))
		}

		stream, err := grpcapi.NewFeedClient(conn).Watch(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("subscribe: %w", err)
		}

		out := cmd.OutOrStdout()
		for {
			change, err := stream.Recv()
			if errors.Is(err, io.EOF) || status.Code(err) == codes.Canceled {
				return nil
			}
			if err != nil {
				return fmt.Errorf("receive change: %w", err)
			}

			at := change.At.Local().Format(time.TimeOnly)
			if change.Op == model.OpHello {
				fmt.Fprintf(out, "%s subscribed\n", at)
				continue
			}
			fmt.Fprintf(out, "%s %s #%d %s\n", at, change.Entity, change.ID, change.Op)
		}
	},
}
