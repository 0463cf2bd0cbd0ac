// Binary mustache_template_engine expands mustache templates
// against stamp info files, data files, ConfigMaps and explicit
// variable substitutions.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"

	"github.com/byte4ever/stache/templating"
)

type arrayFlags []string

func (af *arrayFlags) String() string {
	return strings.Join(*af, ",")
}

func (af *arrayFlags) Set(value string) error {
	*af = append(*af, value)
	return nil
}

// configMapFlags implements flag.Value for collecting
// namespace/name ConfigMap references.
type configMapFlags []templating.ConfigMapRef

func (cf *configMapFlags) String() string {
	refs := make([]string, 0, len(*cf))
	for _, ref := range *cf {
		refs = append(refs, ref.String())
	}

	return strings.Join(refs, ",")
}

func (cf *configMapFlags) Set(value string) error {
	ref, err := templating.ParseConfigMapRef(value)
	if err != nil {
		return err
	}

	*cf = append(*cf, ref)

	return nil
}

// config holds all CLI parameters.
type config struct {
	stampInfoFiles arrayFlags
	dataFiles      arrayFlags
	variables      arrayFlags
	configMaps     configMapFlags
	output         string
	tpl            string
	executable     bool
	startTag       string
	endTag         string
	kubeconfig     string
	timeout        time.Duration
	logLevel       string
}

func parseConfig() *config {
	var cfg config

	flag.Var(
		&cfg.stampInfoFiles,
		"stamp_info_file",
		"Stamp info file path (repeatable)",
	)

	flag.Var(
		&cfg.dataFiles,
		"data",
		"JSON, YAML or .env data file (repeatable)",
	)

	flag.Var(
		&cfg.variables,
		"variable",
		"Variable in NAME=VALUE format (repeatable)",
	)

	flag.Var(
		&cfg.configMaps,
		"configmap",
		"ConfigMap in namespace/name format (repeatable)",
	)

	flag.StringVar(
		&cfg.output, "output", "",
		"Output file path (stdout if empty)",
	)

	flag.StringVar(
		&cfg.tpl, "template", "",
		"Input template file path (stdin if empty)",
	)

	flag.BoolVar(
		&cfg.executable, "executable", false,
		"Set executable bit on output file",
	)

	flag.StringVar(
		&cfg.startTag, "start_tag", "{{",
		"Start tag for template placeholders",
	)

	flag.StringVar(
		&cfg.endTag, "end_tag", "}}",
		"End tag for template placeholders",
	)

	flag.StringVar(
		&cfg.kubeconfig,
		"kubeconfig",
		os.Getenv("KUBECONFIG"),
		"path to kubernetes config file",
	)

	flag.DurationVar(
		&cfg.timeout, "timeout", 30*time.Second,
		"execution timeout",
	)

	flag.StringVar(
		&cfg.logLevel, "log_level", "info",
		"Log level (debug, info, warn, error)",
	)

	flag.Parse()

	return &cfg
}

// parseLevel converts a textual log level, defaulting to info.
func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newClient(kubeconfig string) (kubernetes.Interface, error) {
	const errCtx = "building kubernetes client"

	if kubeconfig == "" {
		if _, ok := os.LookupEnv(
			"KUBERNETES_SERVICE_HOST",
		); !ok {
			kubeconfig = filepath.Join(
				homedir.HomeDir(),
				".kube", "config",
			)
		}
	}

	restConfig, err := clientcmd.BuildConfigFromFlags(
		"", kubeconfig,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return clientset, nil
}

func run(cfg *config) error {
	const errCtx = "mustache_template_engine"

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer cancel()

	ctx, cancelTimeout := context.WithTimeout(ctx, cfg.timeout)
	defer cancelTimeout()

	en := templating.Engine{
		StartTag:       cfg.startTag,
		EndTag:         cfg.endTag,
		StampInfoFiles: cfg.stampInfoFiles,
		DataFiles:      cfg.dataFiles,
		ConfigMaps:     cfg.configMaps,
		Logger:         slog.Default(),
	}

	if len(cfg.configMaps) > 0 {
		client, err := newClient(cfg.kubeconfig)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		en.Client = client
	}

	if err := en.Expand(
		ctx, cfg.tpl, cfg.output, cfg.variables, cfg.executable,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Debug(
		"done",
		"template", cfg.tpl,
		"output", cfg.output,
	)

	return nil
}

func main() {
	cfg := parseConfig()

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: parseLevel(cfg.logLevel),
	})))

	if err := run(cfg); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}
