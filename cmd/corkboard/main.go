package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/lcaruso/corkboard/internal/api"
	"github.com/lcaruso/corkboard/internal/app"
	"github.com/lcaruso/corkboard/internal/cache"
	"github.com/lcaruso/corkboard/internal/config"
	"github.com/lcaruso/corkboard/internal/logger"
	"github.com/lcaruso/corkboard/internal/session"
	"github.com/lcaruso/corkboard/internal/storage"
)

func main() {
	// No .env file is fine; the system environment still applies.
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "corkboard: %v\n", err)
		os.Exit(1)
	}
	if err := logger.InitFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "corkboard: init log: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()
	logger.Infof("starting corkboard against %s", cfg.APIEndpoint)

	if err := os.MkdirAll(filepath.Dir(cfg.CacheDBPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "corkboard: cache dir: %v\n", err)
		os.Exit(1)
	}
	durable, err := storage.OpenBolt(cfg.CacheDBPath, storage.BoltOptions{
		Bucket:   "corkboard",
		MaxBytes: cfg.CacheMaxBytes,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "corkboard: open cache db: %v\n", err)
		os.Exit(1)
	}
	defer durable.Close()
	sessionScoped := storage.NewMemory(0)

	state := session.NewState()
	gw := api.NewClient(cfg.APIEndpoint, state.Token, api.ClientOptions{
		Timeout: cfg.HTTPTimeout,
		RPS:     cfg.RequestRPS,
		Burst:   cfg.RequestBurst,
	})
	a := app.New(gw,
		cache.New(durable),
		state,
		session.NewTokenStore(durable, sessionScoped),
		session.NewNavStore(sessionScoped),
		&termRenderer{out: os.Stdout},
		app.Config{
			TTLDashboard:   cfg.TTLDashboard,
			TTLPosts:       cfg.TTLPosts,
			TTLBoards:      cfg.TTLBoards,
			SearchDebounce: cfg.SearchDebounce,
		},
	)

	ctx := context.Background()
	a.Boot(ctx)
	repl(ctx, a, state)
}

func repl(ctx context.Context, a *app.App, state *session.State) {
	sc := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			fmt.Print("> ")
			continue
		}
		cmd, args := fields[0], fields[1:]
		switch cmd {
		case "quit", "exit":
			return
		case "login":
			if len(args) < 2 {
				fmt.Println("usage: login <username> <password> [remember]")
				break
			}
			remember := len(args) > 2 && args[2] == "remember"
			resp, err := a.Login(ctx, args[0], args[1], remember)
			if err != nil {
				fmt.Println(err)
			} else if !resp.Success {
				fmt.Println("login failed:", resp.Error)
			}
		case "passwd":
			if len(args) != 1 {
				fmt.Println("usage: passwd <new-password>")
				break
			}
			if resp := a.ChangePassword(ctx, args[0]); !resp.Success {
				fmt.Println("password change failed:", resp.Error)
			}
		case "logout":
			a.Logout(ctx)
		case "boards":
			a.NavigateTo(ctx, app.PageDashboard, nil)
		case "open":
			if len(args) != 1 {
				fmt.Println("usage: open <boardId>")
				break
			}
			a.NavigateTo(ctx, app.PageBoard, map[string]string{"boardId": args[0]})
		case "page":
			if len(args) != 1 {
				fmt.Println("usage: page <n>")
				break
			}
			_, boardID, _ := state.Location()
			if boardID == "" {
				fmt.Println("open a board first")
				break
			}
			a.NavigateTo(ctx, app.PageBoard, map[string]string{"boardId": boardID, "page": args[0]})
		case "view":
			if len(args) != 1 {
				fmt.Println("usage: view <postId>")
				break
			}
			a.NavigateTo(ctx, app.PagePost, map[string]string{"postId": args[0]})
		case "post":
			if len(args) < 2 {
				fmt.Println("usage: post <boardId> <title...>")
				break
			}
			if resp := a.CreatePost(ctx, args[0], strings.Join(args[1:], " "), ""); !resp.Success {
				fmt.Println("post failed:", resp.Error)
			}
		case "comment":
			if len(args) < 2 {
				fmt.Println("usage: comment <postId> <body...>")
				break
			}
			_, boardID, _ := state.Location()
			if resp := a.CreateComment(ctx, boardID, args[0], strings.Join(args[1:], " ")); !resp.Success {
				fmt.Println("comment failed:", resp.Error)
			}
		case "newboard":
			if len(args) < 1 {
				fmt.Println("usage: newboard <name...>")
				break
			}
			if resp := a.CreateBoard(ctx, strings.Join(args, " ")); !resp.Success {
				fmt.Println("create board failed:", resp.Error)
			}
		case "search":
			if len(args) < 1 {
				fmt.Println("usage: search <query...>")
				break
			}
			a.SearchPosts(strings.Join(args, " "))
		case "back":
			a.Back(ctx)
		case "return":
			a.Return(ctx)
		default:
			fmt.Println("commands: login passwd logout boards open page view post comment newboard search back return quit")
		}
		fmt.Print("> ")
	}
}
