package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hydro/calculator"
	"hydro/model"
	"hydro/recipe"
	"hydro/server"
)

var (
	configPath string
	tanks      int
	workers    int
	cfg        calculator.Config
)

var rootCmd = &cobra.Command{
	Use:   "hydro",
	Short: "Hydroponic nutrient formulation and stock tank planning",
	Long: `hydro computes fertilizer doses for a nutrient target, checks the ion
balance of the resulting solution and splits the fertilizers into
concentrated stock tanks.

Examples:
  hydro serve                                   # websocket API on the configured address
  hydro formulate conf/recipe.example.toml      # doses, trace and ion balance as JSON
  hydro distribute conf/recipe.example.toml     # stock tank report as JSON
  hydro distribute --tanks 4 recipe.toml        # override the recipe's tank count`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = calculator.LoadConfig(configPath)
		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			log.WithField("level", cfg.LogLevel).Warn("日志级别无效，使用 info")
			level = log.InfoLevel
		}
		log.SetLevel(level)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the websocket API and prometheus metrics",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var formulateCmd = &cobra.Command{
	Use:   "formulate <recipe.toml>...",
	Short: "Compute fertilizer doses and the ion balance for one or more recipes",
	Long: `Compute fertilizer doses, the rule trace and the ion balance.

With a single recipe the result is printed as one JSON object. With several
recipes they are computed concurrently and printed as a JSON array keyed by
recipe file.`,
	Args: cobra.MinimumNArgs(1),
	RunE:  runFormulate,
}

var distributeCmd = &cobra.Command{
	Use:   "distribute <recipe.toml>",
	Short: "Split a recipe's fertilizers into stock tanks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDistribute,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", calculator.DefaultConfigPath, "ini config file")
	formulateCmd.Flags().IntVar(&workers, "workers", 0, "concurrent formulations, defaults to the number of CPUs")
	distributeCmd.Flags().IntVar(&tanks, "tanks", 0, "number of stock tanks, overrides the recipe")

	rootCmd.AddCommand(serveCmd, formulateCmd, distributeCmd)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	EnableCompression: true,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func runServe(cmd *cobra.Command, args []string) error {
	svc, err := server.NewServiceFromConfig(cfg)
	if err != nil {
		return err
	}
	return server.NewServer(cfg.Addr, upgrader, svc).Serve()
}

type recipeResult struct {
	Recipe string                `json:"recipe"`
	Result *server.FormulateResp `json:"result,omitempty"`
	Error  string                `json:"error,omitempty"`
}

func runFormulate(cmd *cobra.Command, args []string) error {
	reqs := make([]model.FormulateReq, 0, len(args))
	for _, path := range args {
		r, err := recipe.Load(path)
		if err != nil {
			return err
		}
		reqs = append(reqs, r.FormulateReq())
	}
	svc, err := server.NewServiceFromConfig(cfg)
	if err != nil {
		return err
	}

	if len(reqs) == 1 {
		resp, err := svc.Formulate(reqs[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	}

	results := svc.FormulateBatch(reqs, workers)
	out := make([]recipeResult, len(results))
	failed := 0
	for i, r := range results {
		out[i] = recipeResult{Recipe: args[i], Result: r.Resp}
		if r.Err != nil {
			out[i].Error = r.Err.Error()
			failed++
		}
	}
	if err := printJSON(cmd.OutOrStdout(), out); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d recipes failed", failed, len(results))
	}
	return nil
}

func runDistribute(cmd *cobra.Command, args []string) error {
	r, err := recipe.Load(args[0])
	if err != nil {
		return err
	}
	svc, err := server.NewServiceFromConfig(cfg)
	if err != nil {
		return err
	}
	req := r.DistributeReq()
	if tanks > 0 {
		req.TankCount = tanks
	}
	resp, err := svc.Distribute(req)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), resp.Report)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
