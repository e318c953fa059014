// Package tessexec adapts the tesseract CLI to the recognizer port. Crops
// are piped in as PNG and text comes back over stdout; a failed invocation
// gets one retry pinned to a single thread before the error surfaces.
package tessexec

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sanitaravel/starship-analyzer-sub000/pkg/log"
)

// defaultPSM treats each crop as a single line of text, which matches the
// overlay readouts.
const defaultPSM = 7

// Recognizer shells out to tesseract for every crop.
type Recognizer struct {
	binary string
	psm    int
	logger log.Logger
}

// NewRecognizer creates a recognizer using tesseract from PATH.
func NewRecognizer(logger log.Logger) *Recognizer {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Recognizer{binary: "tesseract", psm: defaultPSM, logger: logger}
}

// Recognize runs tesseract over the crop with the given character
// whitelist. Empty output is a valid result; an error means both the
// normal run and the single-threaded retry failed.
func (r *Recognizer) Recognize(ctx context.Context, crop image.Image, whitelist string) (string, error) {
	text, err := r.run(ctx, crop, whitelist, false)
	if err == nil {
		return text, nil
	}
	r.logger.Warn("recognition failed, retrying single-threaded", log.Err(err))
	return r.run(ctx, crop, whitelist, true)
}

// Release is a no-op: each invocation is a short-lived process, so there is
// no accelerator state to hand back between batches.
func (r *Recognizer) Release() {}

func (r *Recognizer) run(ctx context.Context, crop image.Image, whitelist string, singleThread bool) (string, error) {
	var in bytes.Buffer
	if err := png.Encode(&in, crop); err != nil {
		return "", fmt.Errorf("encode crop: %w", err)
	}

	cmd := exec.CommandContext(ctx, r.binary, buildArgs(r.psm, whitelist)...)
	cmd.Stdin = &in
	if singleThread {
		cmd.Env = append(os.Environ(), "OMP_THREAD_LIMIT=1")
	}

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return out.String(), nil
}

func buildArgs(psm int, whitelist string) []string {
	args := []string{"stdin", "stdout", "--psm", strconv.Itoa(psm)}
	if whitelist != "" {
		args = append(args, "-c", "tessedit_char_whitelist="+whitelist)
	}
	return args
}
