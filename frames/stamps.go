package frames

import (
	"fmt"
	"os"
	"strings"

	"github.com/valyala/fasttemplate"
)

// LoadStamps reads workspace status files and merges them
// into a single frame. Each line is "KEY VALUE" with the
// first space as delimiter; lines without a space are
// skipped and later files override earlier ones.
func LoadStamps(
	infoFiles []string,
) (map[string]any, error) {
	const errCtx = "loading stamps"

	stamps := make(map[string]any)

	for _, sf := range infoFiles {
		content, err := os.ReadFile(sf) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		for _, line := range strings.Split(
			string(content), "\n",
		) {
			key, val, ok := strings.Cut(
				strings.TrimRight(line, "\r"), " ",
			)
			if ok {
				stamps[key] = val
			}
		}
	}

	return stamps, nil
}

// ExpandVariables turns NAME=VALUE pairs into a frame. Single-brace
// {KEY} placeholders in VALUE are substituted from stamps; unknown
// placeholders are kept as written. Each variable is reachable both
// as NAME and as variables.NAME.
func ExpandVariables(
	vars []string,
	stamps map[string]any,
) (map[string]any, error) {
	const errCtx = "expanding variables"

	// fasttemplate only accepts string-like tag values.
	tags := make(map[string]any, len(stamps))
	for key, val := range stamps {
		tags[key] = fmt.Sprint(val)
	}

	frame := make(map[string]any)
	scoped := make(map[string]any)

	for _, vr := range vars {
		name, raw, ok := strings.Cut(vr, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf(
				"%s: variable must be VAR=value, got %s",
				errCtx, vr,
			)
		}

		val := fasttemplate.ExecuteStringStd(
			raw, "{", "}", tags,
		)

		frame[name] = val
		scoped[name] = val
	}

	if len(scoped) > 0 {
		frame["variables"] = scoped
	}

	return frame, nil
}
