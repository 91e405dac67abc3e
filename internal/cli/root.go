package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/noble-gase/minigame"
)

// 凭证环境变量，存在 .env 文件时一并加载
const (
	EnvAppID     = "APPID"
	EnvAppSecret = "APP_SECRET"
)

type flags struct {
	appid        string
	secret       string
	host         string
	forceRefresh bool
	classic      bool
	verbose      bool
}

// NewRootCmd 生成根命令
func NewRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "minigame-token",
		Short:         "Fetch a WeChat Mini Game access token",
		Long:          "minigame-token requests an access token from the WeChat Mini Game server API and prints it as JSON.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// .env 不存在时忽略，仍使用命令行参数和进程环境变量
			_ = godotenv.Load()

			if f.appid == "" {
				f.appid = os.Getenv(EnvAppID)
			}
			if f.secret == "" {
				f.secret = os.Getenv(EnvAppSecret)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), f)
		},
	}

	cmd.Flags().StringVar(&f.appid, "appid", "", "AppID (default $"+EnvAppID+")")
	cmd.Flags().StringVar(&f.secret, "secret", "", "AppSecret (default $"+EnvAppSecret+")")
	cmd.Flags().StringVar(&f.host, "host", minigame.DefaultHost, "API base URL")
	cmd.Flags().BoolVar(&f.forceRefresh, "force-refresh", false, "invalidate the current token and issue a new one")
	cmd.Flags().BoolVar(&f.classic, "classic", false, "use /cgi-bin/token instead of /cgi-bin/stable_token")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log requests to stderr")

	return cmd
}

func run(ctx context.Context, stdout, stderr io.Writer, f flags) error {
	options := []minigame.Option{minigame.WithHost(f.host)}
	if f.verbose {
		options = append(options, minigame.WithLogger(stderrLogger(stderr)))
	}
	c := minigame.NewClient(options...)

	var (
		ret *minigame.AccessTokenResponse
		err error
	)
	if f.classic {
		ret, err = c.AccessToken(ctx, minigame.NewAccessTokenRequest(f.appid, f.secret))
	} else {
		ret, err = c.StableAccessToken(ctx, minigame.NewStableAccessTokenRequest(minigame.StableAccessTokenOptions{
			AppID:        f.appid,
			Secret:       f.secret,
			ForceRefresh: &f.forceRefresh,
		}))
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(ret)
}

func stderrLogger(w io.Writer) func(ctx context.Context, err error, data map[string]string) {
	return func(ctx context.Context, err error, data map[string]string) {
		keys := make([]string, 0, len(data))
		for k := range data {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			fmt.Fprintf(w, "%s: %s\n", k, data[k])
		}
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
		}
	}
}

// ExitCode 根据错误分类返回进程退出码
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, minigame.ErrPermission):
		return 3
	case errors.Is(err, minigame.ErrNotFound):
		return 4
	default:
		return 1
	}
}

// Execute 执行根命令，失败时按 ExitCode 退出
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(ExitCode(err))
	}
}
