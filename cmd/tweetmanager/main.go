package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/WangWilly/xBrowse/pkgs/config"
	"github.com/WangWilly/xBrowse/pkgs/database"
	"github.com/WangWilly/xBrowse/pkgs/logging"
	"github.com/WangWilly/xBrowse/pkgs/metrics"
	"github.com/WangWilly/xBrowse/pkgs/repos/historyrepo"
	"github.com/WangWilly/xBrowse/pkgs/repos/tweetrepo"
	"github.com/WangWilly/xBrowse/pkgs/session"
	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
)

const historyListSize = 20

func main() {
	////////////////////////////////////////////////////////////////////////////
	// Command Line Arguments Setup
	////////////////////////////////////////////////////////////////////////////
	var confArg bool
	var isDebug bool
	var showHistory bool
	var port int

	flag.BoolVar(&confArg, "conf", false, "reconfigure")
	flag.BoolVar(&isDebug, "debug", false, "display debug message")
	flag.BoolVar(&showHistory, "history", false, "print the most recent queries and exit")
	flag.IntVar(&port, "port", 0, "MongoDB port, overrides the configured one")
	flag.Parse()

	// context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var homepath string
	if runtime.GOOS == "windows" {
		homepath = os.Getenv("appdata")
	} else {
		homepath = os.Getenv("HOME")
	}
	if homepath == "" {
		panic("failed to get home path from env")
	}

	appRootPath := filepath.Join(homepath, ".x_browse")
	confPath := filepath.Join(appRootPath, "conf.yaml")
	logPath := filepath.Join(appRootPath, "x_browse.log")
	if err := os.MkdirAll(appRootPath, 0755); err != nil {
		log.Fatalln("failed to make app dir", err)
	}

	////////////////////////////////////////////////////////////////////////////
	// Logger Initialization
	////////////////////////////////////////////////////////////////////////////
	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		log.Fatalln("failed to create log file:", err)
	}
	defer logFile.Close()
	logging.InitLogger(isDebug, logFile)

	// Configuration Loading
	conf, err := config.ReadConfig(confPath)
	if os.IsNotExist(err) || confArg {
		conf, err = config.PromptConfig(os.Stdin, os.Stdout, appRootPath, confPath)
		if err != nil {
			log.Fatalln("config failure with", err)
		}
	}
	if err != nil {
		log.Fatalln("failed to load config:", err)
	}
	if confArg {
		log.Println("config done")
		return
	}
	if port > 0 {
		conf.Mongo.Port = port
	}
	log.Infoln("config is loaded")

	// History Database Connection
	historyDB, err := database.ConnectWithConfig(conf.History)
	if err != nil {
		log.Fatalln("failed to connect to history database:", err)
	}
	defer historyDB.Close()
	historyRepo := historyrepo.New()
	if err := historyRepo.CreateTable(ctx, historyDB); err != nil {
		log.Fatalln("failed to prepare history database:", err)
	}

	if showHistory {
		printHistory(ctx, historyRepo, historyDB)
		return
	}

	// MongoDB Connection
	client, db, err := database.ConnectMongo(ctx, conf.Mongo)
	if err != nil {
		log.Fatalln("failed to connect to mongodb:", err)
	}
	defer client.Disconnect(context.Background())
	log.Infoln("database is connected")

	if conf.MetricsAddr != "" {
		metrics.StartServer(conf.MetricsAddr)
	}

	// listen signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer close(sigChan)
	defer signal.Stop(sigChan)
	go func() {
		sig, ok := <-sigChan
		if ok {
			log.Warnln("[listener] caught signal:", sig)
			cancel()
			os.Exit(130)
		}
	}()

	////////////////////////////////////////////////////////////////////////////
	// Interactive Session
	////////////////////////////////////////////////////////////////////////////
	sessionId := uuid.NewString()
	log.WithField("session", sessionId).Infoln("session started")
	if !isDebug {
		logging.QuietConsole()
	}

	repo := tweetrepo.New()
	if conf.Mongo.Collection != "" {
		repo = tweetrepo.NewWithCollection(conf.Mongo.Collection)
	}

	console := session.New(os.Stdin, os.Stdout, db, repo).
		WithHistory(historyRepo, historyDB, sessionId).
		WithHighlight(true)
	if err := console.Run(ctx); err != nil {
		log.WithField("session", sessionId).Errorln("session ended with error:", err)
	}
	if n, err := historyRepo.CountBySession(context.Background(), historyDB, sessionId); err == nil {
		log.WithField("session", sessionId).Infof("session recorded %d queries", n)
	}
}

func printHistory(ctx context.Context, repo *historyrepo.Repo, db *sqlx.DB) {
	entries, err := repo.ListRecent(ctx, db, historyListSize)
	if err != nil {
		log.Fatalln("failed to list query history:", err)
	}
	if len(entries) == 0 {
		fmt.Println("No queries recorded yet.")
		return
	}
	for _, e := range entries {
		fmt.Printf("%s  %s  %-14s %-30q %d results\n",
			color.FgGray.Render(e.CreatedAt.Local().Format(time.DateTime)),
			color.FgGray.Render(shortId(e.SessionId)),
			color.FgCyan.Render(e.Command),
			e.Terms,
			e.ResultCount,
		)
	}
}

func shortId(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
