package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"todo-notes/internal/confirm"
)

// flagYes пропускает подтверждение удаления
var flagYes bool

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// gate возвращает подтверждение удаления: вопрос в терминале или --yes
func gate(cmd *cobra.Command) confirm.Gate {
	if flagYes {
		return confirm.Always(true)
	}
	return confirm.Terminal{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
}

func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout())
}
