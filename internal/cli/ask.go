package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"nuggetube-backend/internal/config"
	"nuggetube-backend/internal/model"
	"nuggetube-backend/internal/responder"
	"nuggetube-backend/internal/service"
	"nuggetube-backend/internal/storage"
	"nuggetube-backend/internal/utils"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ask <query...>",
		Short: "Ask the chicken expert",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAsk,
	}

	cmd.Flags().StringP("server", "s", "", "Ask a running server at this base URL instead of answering locally")

	RootCmd.AddCommand(cmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	serverURL, _ := cmd.Flags().GetString("server")

	var (
		resp *model.ChatResponse
		err  error
	)
	if serverURL != "" {
		resp = &model.ChatResponse{}
		client := utils.NewHTTPClient(30 * time.Second)
		err = utils.PostJSON(cmd.Context(), client, strings.TrimRight(serverURL, "/")+"/api/chat/ask",
			model.AskRequest{Message: query}, resp)
	} else {
		chat := service.NewChatService(storage.NewMemoryStorage(), responder.New(nil, nil),
			service.NopSpeaker{}, config.ChatConfig{}, config.SessionConfig{})
		resp, err = chat.Ask(query)
	}
	if err != nil {
		return err
	}

	return printReply(cmd.OutOrStdout(), resp)
}

func printReply(w io.Writer, resp *model.ChatResponse) error {
	if formatFlag == "json" {
		return printJSON(w, resp)
	}

	fmt.Fprintln(w, resp.Content)
	if resp.Location != nil {
		fmt.Fprintf(w, "📍 %s (%.4f, %.4f)\n", resp.Location.Name, resp.Location.Lat, resp.Location.Lng)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
