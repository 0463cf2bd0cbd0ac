package templating

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"k8s.io/client-go/kubernetes"

	"github.com/byte4ever/stache/frames"
	"github.com/byte4ever/stache/mustache"
)

// ErrNoClient is returned when ConfigMaps are requested without a
// Kubernetes client.
var ErrNoClient = errors.New("no kubernetes client configured")

// ConfigMapRef names a ConfigMap used as a context frame.
type ConfigMapRef struct {
	Namespace string
	Name      string
}

func (cr ConfigMapRef) String() string {
	return cr.Namespace + "/" + cr.Name
}

// ParseConfigMapRef parses a "namespace/name" reference.
func ParseConfigMapRef(value string) (ConfigMapRef, error) {
	ns, name, ok := strings.Cut(strings.TrimSpace(value), "/")
	if !ok || ns == "" || name == "" || strings.Contains(name, "/") {
		return ConfigMapRef{}, fmt.Errorf(
			"configmap must be namespace/name, got %q", value,
		)
	}

	return ConfigMapRef{Namespace: ns, Name: name}, nil
}

// Engine expands mustache templates against a context
// assembled from stamp info files, data files, ConfigMaps
// and explicit variables.
type Engine struct {
	StartTag       string
	EndTag         string
	StampInfoFiles []string
	DataFiles      []string
	ConfigMaps     []ConfigMapRef

	// Client is required only when ConfigMaps is set.
	Client kubernetes.Interface

	// Cache, when set, shares parsed templates between
	// expansions.
	Cache *Cache

	Logger *slog.Logger

	// Stdin and Stdout replace the process streams when set.
	Stdin  io.Reader
	Stdout io.Writer
}

// Expand reads a template, renders it, and writes the
// result. If tplPath is empty it reads stdin; if outPath is
// empty it writes to stdout, otherwise the file is replaced
// atomically with mode 0644, or 0755 if executable is true.
//
// Context frames, outermost first:
//  1. Stamp files, merged into one frame.
//  2. Each data file, in order.
//  3. Each ConfigMap, in order.
//  4. Variables NAME=VALUE, whose values may reference
//     stamps with single-brace tags.
func (en *Engine) Expand(
	ctx context.Context,
	tplPath string,
	outPath string,
	vars []string,
	executable bool,
) error {
	const errCtx = "expanding template"

	frameList, err := en.loadFrames(ctx, vars)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	tplContent, err := en.readTemplate(tplPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	tpl, err := en.compile(string(tplContent))
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	out, err := tpl.Render(frameList...)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := en.writeOutput(outPath, out, executable); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	en.logger().Debug(
		"template expanded",
		"template", tplPath,
		"output", outPath,
		"frames", len(frameList),
		"bytes", len(out),
	)

	return nil
}

// tags returns the configured start/end tags, falling
// back to double-brace defaults.
func (en *Engine) tags() (string, string) {
	startTag := en.StartTag
	if startTag == "" {
		startTag = mustache.DefaultLeftDelim
	}

	endTag := en.EndTag
	if endTag == "" {
		endTag = mustache.DefaultRightDelim
	}

	return startTag, endTag
}

func (en *Engine) logger() *slog.Logger {
	if en.Logger != nil {
		return en.Logger
	}

	return slog.Default()
}

// loadFrames builds the context frames in precedence order,
// outermost first.
func (en *Engine) loadFrames(
	ctx context.Context,
	vars []string,
) ([]any, error) {
	const errCtx = "loading context"

	stamps, err := frames.LoadStamps(en.StampInfoFiles)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	frameList := []any{stamps}

	for _, df := range en.DataFiles {
		frame, err := frames.LoadFile(df)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		frameList = append(frameList, frame)
	}

	if len(en.ConfigMaps) > 0 && en.Client == nil {
		return nil, fmt.Errorf("%s: %w", errCtx, ErrNoClient)
	}

	for _, ref := range en.ConfigMaps {
		frame, err := frames.LoadConfigMap(
			ctx, en.Client, ref.Namespace, ref.Name,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		en.logger().Debug(
			"configmap loaded",
			"configmap", ref.String(),
			"keys", len(frame),
		)

		frameList = append(frameList, frame)
	}

	varFrame, err := frames.ExpandVariables(vars, stamps)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return append(frameList, varFrame), nil
}

func (en *Engine) compile(src string) (*mustache.Template, error) {
	startTag, endTag := en.tags()

	if en.Cache != nil {
		return en.Cache.Get(src, startTag, endTag)
	}

	return mustache.Compile(
		src, mustache.WithDelims(startTag, endTag),
	)
}

// readTemplate reads the template from a file path. If
// tplPath is empty it reads from stdin.
func (en *Engine) readTemplate(
	tplPath string,
) ([]byte, error) {
	const errCtx = "reading template"

	if tplPath != "" {
		content, err := os.ReadFile(tplPath) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		return content, nil
	}

	in := en.Stdin
	if in == nil {
		in = os.Stdin
	}

	content, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: reading stdin: %w", errCtx, err,
		)
	}

	return content, nil
}

// writeOutput writes the rendered text to stdout when
// outPath is empty, or atomically replaces outPath.
func (en *Engine) writeOutput(
	outPath string,
	out string,
	executable bool,
) error {
	const errCtx = "writing output"

	if outPath == "" {
		stdout := en.Stdout
		if stdout == nil {
			stdout = os.Stdout
		}

		if _, err := io.WriteString(stdout, out); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		return nil
	}

	var perm os.FileMode = 0o644
	if executable {
		perm = 0o755
	}

	if err := atomic.WriteFile(
		outPath, strings.NewReader(out),
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := os.Chmod(outPath, perm); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
