// Package main はアプリケーションのエントリーポイントを提供します。
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/stsysd/shapekit/api"
	"github.com/stsysd/shapekit/collection"
	"github.com/stsysd/shapekit/config"
	"github.com/stsysd/shapekit/model"
	"github.com/stsysd/shapekit/render"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "shapekit",
		Usage: "2-D shape collection toolkit",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "path to a TOML config file",
						Sources: cli.EnvVars("SHAPEKIT_CONFIG"),
					},
					&cli.StringFlag{
						Name:  "port",
						Usage: "override the listen port",
					},
				},
				Action: runServe,
			},
			{
				Name:  "demo",
				Usage: "build a sample collection and print it",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "svg",
						Usage: "also write the canvas to this file",
					},
				},
				Action: runDemo,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logrus.Fatal(err)
	}
}

// newLogger は設定に従ってロガーを生成します。
func newLogger(level, format string) (*logrus.Logger, error) {
	logger := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(lvl)
	if strings.EqualFold(format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}

// runServe は設定を読み込み、APIサーバーを起動します。
func runServe(ctx context.Context, cmd *cli.Command) error {
	// 設定の読み込み
	cfg, err := config.NewConfig(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if port := cmd.String("port"); port != "" {
		cfg.Port = port
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	model.SetLogger(logger)

	// コレクションの初期化（終了時に全図形を解放）
	coll := collection.New(logger)
	defer coll.Close()

	// サーバーインスタンスの作成
	server := api.NewServer(coll, cfg, logger)

	// SIGINT / SIGTERM でグレースフルに停止
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, ":"+cfg.Port)
}

// runDemo はサンプルの図形を並べて表示します。
func runDemo(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger("warn", "text")
	if err != nil {
		return err
	}
	model.SetLogger(logger)

	coll := collection.New(logger)
	defer coll.Close()

	if err := buildDemo(coll); err != nil {
		return err
	}
	return writeDemo(cmd.Root().Writer, coll, cmd.String("svg"))
}

// buildDemo はサンプルの図形をコレクションに追加し、いくつかの操作を適用します。
func buildDemo(coll *collection.ShapeCollection) error {
	shapes := []model.Shape{
		model.NewRectangle(model.NewCoordinate(10, 20), 5, 10),
		model.NewSquare(model.NewCoordinate(30, 5), 4),
		model.NewCircle(model.NewCoordinate(10, 10), 5),
		model.NewTriangle(model.NewCoordinate(0, 0), model.NewCoordinate(30, 0), model.NewCoordinate(15, 26)),
	}
	for _, s := range shapes {
		if _, err := coll.Add(s); err != nil {
			return fmt.Errorf("failed to add %s: %w", s.Kind(), err)
		}
	}

	coll.TranslateAll(2, 2)
	coll.ScaleAll(2, true)
	return nil
}

// writeDemo は表示文字列と各図形の面積・周長を出力し、必要ならSVGを書き出します。
func writeDemo(w io.Writer, coll *collection.ShapeCollection, svgPath string) error {
	fmt.Fprint(w, coll.Display())
	for i := 0; i < coll.Len(); i++ {
		fmt.Fprintf(w, "#%d area=%.3f perimeter=%.3f\n", i+1, coll.Area(i), coll.Perimeter(i))
	}

	if svgPath == "" {
		return nil
	}
	var svg string
	coll.Read(func(entries []collection.Entry) {
		shapes := make([]model.Shape, len(entries))
		for i, e := range entries {
			shapes[i] = e.Shape
		}
		opts := render.DefaultOptions()
		opts.Title = "shapekit demo"
		svg = render.GenerateCanvasSVG(shapes, opts)
	})
	if err := os.WriteFile(svgPath, []byte(svg), 0o644); err != nil {
		return fmt.Errorf("failed to write svg: %w", err)
	}
	fmt.Fprintf(w, "canvas written to %s\n", svgPath)
	return nil
}
