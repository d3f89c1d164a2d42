package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/WangWilly/xBrowse/pkgs/config"
	"github.com/WangWilly/xBrowse/pkgs/database"
	"github.com/WangWilly/xBrowse/pkgs/loader"
	"github.com/WangWilly/xBrowse/pkgs/logging"
	"github.com/WangWilly/xBrowse/pkgs/repos/tweetrepo"
	"github.com/gookit/color"
	log "github.com/sirupsen/logrus"
)

func main() {
	////////////////////////////////////////////////////////////////////////////
	// Command Line Arguments Setup
	////////////////////////////////////////////////////////////////////////////
	var isDebug bool
	var batchSize int

	flag.BoolVar(&isDebug, "debug", false, "display debug message")
	flag.IntVar(&batchSize, "batch", 0, "number of tweets inserted per batch")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-debug] [-batch N] <json_file> <port>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	jsonPath := flag.Arg(0)
	port, err := strconv.Atoi(flag.Arg(1))
	if err != nil || port <= 0 {
		fmt.Fprintf(os.Stderr, "invalid port %q\n", flag.Arg(1))
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var homepath string
	if runtime.GOOS == "windows" {
		homepath = os.Getenv("appdata")
	} else {
		homepath = os.Getenv("HOME")
	}

	////////////////////////////////////////////////////////////////////////////
	// Logger Initialization
	////////////////////////////////////////////////////////////////////////////
	var conf *config.Config
	if homepath != "" {
		appRootPath := filepath.Join(homepath, ".x_browse")
		if err := os.MkdirAll(appRootPath, 0755); err != nil {
			log.Fatalln("failed to make app dir", err)
		}
		logFile, err := os.OpenFile(filepath.Join(appRootPath, "x_browse.log"), os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
		if err != nil {
			log.Fatalln("failed to create log file:", err)
		}
		defer logFile.Close()
		logging.InitLogger(isDebug, logFile)

		conf, err = config.ReadConfig(filepath.Join(appRootPath, "conf.yaml"))
		if err != nil && !os.IsNotExist(err) {
			log.Fatalln("failed to load config:", err)
		}
	}
	mongoConf, batchSize := resolveTarget(conf, port, batchSize)

	// listen signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		if sig, ok := <-sigChan; ok {
			log.Warnln("[listener] caught signal:", sig)
			cancel()
		}
	}()

	////////////////////////////////////////////////////////////////////////////
	// Load
	////////////////////////////////////////////////////////////////////////////
	file, err := os.Open(jsonPath)
	if err != nil {
		log.Fatalln("failed to open data file:", err)
	}
	defer file.Close()

	client, db, err := database.ConnectMongo(ctx, mongoConf)
	if err != nil {
		log.Fatalln("failed to connect to mongodb:", err)
	}
	defer client.Disconnect(context.Background())

	start := time.Now()
	stats, err := loader.New(tweetrepo.NewWithCollection(mongoConf.Collection), batchSize).Load(ctx, db, file)
	if err != nil {
		log.WithField("inserted", stats.Inserted).Errorln("load aborted:", err)
		fmt.Fprintln(os.Stderr, color.FgRed.Render("Error: "+err.Error()))
		client.Disconnect(context.Background())
		os.Exit(1)
	}

	fmt.Printf("%s %d tweets from %d users in %d batches (%s)\n",
		color.FgGreen.Render("Inserted"),
		stats.Inserted,
		stats.Users,
		stats.Batches,
		time.Since(start).Round(time.Millisecond),
	)
}

// resolveTarget applies the command line over the configured store. Only the
// port and the batch size can be overridden.
func resolveTarget(conf *config.Config, port, batchSize int) (database.MongoConfig, int) {
	var mongoConf database.MongoConfig
	if conf != nil {
		mongoConf = conf.Mongo
		if batchSize <= 0 {
			batchSize = conf.Loader.BatchSize
		}
	}
	mongoConf.Port = port
	return mongoConf, batchSize
}
