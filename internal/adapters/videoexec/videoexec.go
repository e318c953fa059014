// Package videoexec adapts ffprobe and ffmpeg subprocesses to the frame
// source port. Metadata comes from one ffprobe invocation; frames are
// decoded by ffmpeg into raw RGBA streamed over stdout, with seeks mapped
// to fresh ffmpeg processes started at the target timestamp.
package videoexec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sanitaravel/starship-analyzer-sub000/internal/ports"
	"github.com/sanitaravel/starship-analyzer-sub000/pkg/log"
)

// Opener opens independent frame-source handles for a video path.
type Opener struct {
	ffmpeg  string
	ffprobe string
	logger  log.Logger
}

// NewOpener creates an opener using ffmpeg and ffprobe from PATH.
func NewOpener(logger log.Logger) *Opener {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Opener{ffmpeg: "ffmpeg", ffprobe: "ffprobe", logger: logger}
}

// Metadata describes the first video stream of a file.
type Metadata struct {
	Width      int
	Height     int
	FPS        float64
	FrameCount int
}

// Open probes the file and returns a handle positioned at frame zero.
func (o *Opener) Open(path string) (ports.FrameSource, error) {
	meta, err := o.Probe(path)
	if err != nil {
		return nil, err
	}
	return &source{
		ffmpeg: o.ffmpeg,
		path:   path,
		meta:   meta,
		pos:    0,
		buf:    make([]byte, meta.Width*meta.Height*4),
		logger: o.logger,
	}, nil
}

// Probe runs ffprobe and extracts stream dimensions, frame rate and frame
// count. Containers without an nb_frames entry fall back to duration*fps.
func (o *Opener) Probe(path string) (Metadata, error) {
	cmd := exec.Command(o.ffprobe,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,r_frame_rate,nb_frames,duration",
		"-of", "json",
		path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return Metadata{}, fmt.Errorf("ffprobe %s: %w: %s", path, err, strings.TrimSpace(stderr.String()))
	}

	var probe struct {
		Streams []struct {
			Width      int    `json:"width"`
			Height     int    `json:"height"`
			RFrameRate string `json:"r_frame_rate"`
			NBFrames   string `json:"nb_frames"`
			Duration   string `json:"duration"`
		} `json:"streams"`
	}
	if err := json.Unmarshal(out, &probe); err != nil {
		return Metadata{}, fmt.Errorf("ffprobe output for %s: %w", path, err)
	}
	if len(probe.Streams) == 0 {
		return Metadata{}, fmt.Errorf("no video stream in %s", path)
	}

	stream := probe.Streams[0]
	fps := parseRate(stream.RFrameRate)
	frameCount, _ := strconv.Atoi(stream.NBFrames)
	if frameCount == 0 && fps > 0 {
		if duration, err := strconv.ParseFloat(stream.Duration, 64); err == nil {
			frameCount = int(duration * fps)
		}
	}

	return Metadata{
		Width:      stream.Width,
		Height:     stream.Height,
		FPS:        fps,
		FrameCount: frameCount,
	}, nil
}

// parseRate converts ffprobe's fractional rate ("30000/1001") to a float.
func parseRate(rate string) float64 {
	num, den, found := strings.Cut(rate, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}

// source is one decoding handle. It keeps at most one ffmpeg process alive
// and restarts it whenever a seek breaks sequential reading.
type source struct {
	ffmpeg string
	path   string
	meta   Metadata

	cmd    *exec.Cmd
	stdout io.ReadCloser
	pos    int
	buf    []byte
	logger log.Logger
}

func (s *source) FrameCount() int { return s.meta.FrameCount }
func (s *source) FPS() float64    { return s.meta.FPS }

func (s *source) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.meta.Width, s.meta.Height)
}

// Seek positions the handle at the given frame. Seeking to the frame the
// open stream is already about to yield is free; anything else restarts
// ffmpeg at the target timestamp.
func (s *source) Seek(index int) error {
	if index < 0 || index >= s.meta.FrameCount {
		return fmt.Errorf("seek out of range: frame %d of %d", index, s.meta.FrameCount)
	}
	if s.cmd != nil && s.pos == index {
		return nil
	}
	s.closeStream()
	s.pos = index
	return nil
}

// ReadNext decodes the frame at the current position and advances past it.
func (s *source) ReadNext() (image.Image, error) {
	if s.cmd == nil {
		if err := s.startStream(s.pos); err != nil {
			return nil, err
		}
	}
	if _, err := io.ReadFull(s.stdout, s.buf); err != nil {
		s.closeStream()
		return nil, fmt.Errorf("read frame %d: %w", s.pos, err)
	}

	frame := image.NewRGBA(s.Bounds())
	copy(frame.Pix, s.buf)
	s.pos++
	return frame, nil
}

// Release kills the decoder process and frees the handle.
func (s *source) Release() error {
	s.closeStream()
	return nil
}

func (s *source) startStream(index int) error {
	args := []string{"-v", "error"}
	if index > 0 && s.meta.FPS > 0 {
		args = append(args, "-ss", fmt.Sprintf("%.6f", float64(index)/s.meta.FPS))
	}
	args = append(args,
		"-i", s.path,
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-an",
		"-")

	cmd := exec.Command(s.ffmpeg, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start: %w", err)
	}

	s.cmd = cmd
	s.stdout = stdout
	s.logger.Debug("decoder stream started",
		log.String("video", s.path), log.Int("frame", index))
	return nil
}

func (s *source) closeStream() {
	if s.cmd == nil {
		return
	}
	s.stdout.Close()
	if s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	s.cmd.Wait()
	s.cmd = nil
	s.stdout = nil
}
