package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/mates/internal/telegram"
)

var telegramCmd = &cobra.Command{
	Use:   "telegram",
	Short: "Practise through a private Telegram bot",
	Long: "Runs a Telegram bot that serves a single chat. Set MATES_TELEGRAM_TOKEN to the bot\n" +
		"token and MATES_TELEGRAM_CHAT_ID to the learner's chat id.",
	RunE: func(cmd *cobra.Command, args []string) error {
		token := os.Getenv("MATES_TELEGRAM_TOKEN")
		if token == "" {
			return errors.New("MATES_TELEGRAM_TOKEN is not set")
		}
		chatID, err := strconv.ParseInt(os.Getenv("MATES_TELEGRAM_CHAT_ID"), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MATES_TELEGRAM_CHAT_ID: %w", err)
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		api, err := telegram.NewAPI(token)
		if err != nil {
			return err
		}
		return telegram.New(api, chatID, rt.session, rt.tracker).Run(cmd.Context())
	},
}
