package planner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/matafokka/aerialware-bridge/log"
	"github.com/matafokka/aerialware-bridge/utils"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
	"go.uber.org/zap"
)

const (
	PluginName = "planner"

	// BinaryName is the conventional planner executable name looked up inside
	// a candidate directory.
	BinaryName = "aerialware-planner"

	// MemoryFileName holds the last directory the planner loaded from. Plain
	// text, first line only, written next to the bridge's working directory.
	MemoryFileName = "AerialWarePath.txt"
)

var (
	ErrCanceled      = errors.New("planner path prompt canceled")
	ErrNotExecutable = errors.New("planner binary is not executable")
)

// PromptFunc asks the user for a planner directory. The second return value
// is false when the user cancels the dialog.
type PromptFunc func() (string, bool)

// Handle is the explicit reference to a loaded planner. The caller owns it
// and must Kill it when the session is over.
type Handle struct {
	Planner FlightPlanner
	Dir     string

	client *plugin.Client
}

// Kill terminates the planner subprocess. Safe to call on a nil handle.
func (h *Handle) Kill() {
	if h != nil && h.client != nil {
		h.client.Kill()
	}
}

// Loader resolves and starts the external planner binary.
type Loader struct {
	DefaultDir string
	MemoryFile string
	Standalone bool
	Debug      bool

	load   func(dir string) (*Handle, error) // swapped out in tests
	logTag string
}

func NewLoader(defaultDir string, standalone bool) *Loader {
	l := &Loader{
		DefaultDir: defaultDir,
		MemoryFile: MemoryFileName,
		Standalone: standalone,
		logTag:     "Loader:",
	}
	l.load = l.tryLoad
	return l
}

// Bootstrap locates and loads the planner, stopping at the first success:
// the default directory, then the directory remembered in the memory file,
// then a prompt loop. A success through the memory file or the prompt
// overwrites the memory file with the working directory. Cancellation of the
// prompt returns ErrCanceled with no memory-file write.
func (l *Loader) Bootstrap(prompt PromptFunc) (*Handle, error) {
	if h, err := l.load(l.DefaultDir); err == nil {
		log.Info(l.logTag+"planner loaded from default dir", zap.String("dir", l.DefaultDir))
		return h, nil
	} else {
		log.Info(l.logTag+"default dir load failed", zap.String("dir", l.DefaultDir), zap.Error(err))
	}

	if dir, ok := l.readMemoryFile(); ok {
		if h, err := l.load(dir); err == nil {
			log.Info(l.logTag+"planner loaded from remembered dir", zap.String("dir", dir))
			l.writeMemoryFile(dir)
			return h, nil
		} else {
			log.Info(l.logTag+"remembered dir load failed", zap.String("dir", dir), zap.Error(err))
		}
	}

	for {
		dir, ok := prompt()
		if !ok {
			return nil, ErrCanceled
		}
		h, err := l.load(dir)
		if err != nil {
			log.Info(l.logTag+"prompted dir load failed", zap.String("dir", dir), zap.Error(err))
			continue
		}
		l.writeMemoryFile(dir)
		return h, nil
	}
}

func (l *Loader) readMemoryFile() (dir string, ok bool) {
	b, err := os.ReadFile(l.MemoryFile)
	if err != nil {
		return
	}
	// older memory files written on Windows may carry a legacy encoding
	if !utf8.Valid(b) {
		if d, e := utils.GbkToUtf8(b); e == nil {
			b = d
		}
	}
	line, _, _ := strings.Cut(utils.B2S(b), "\n")
	dir = strings.TrimSpace(line)
	ok = dir != ""
	return
}

func (l *Loader) writeMemoryFile(dir string) {
	if err := os.WriteFile(l.MemoryFile, append(utils.S2B(dir), '\n'), 0o644); err != nil {
		log.Error(l.logTag+"memory file write failed", zap.String("file", l.MemoryFile), zap.Error(err))
	}
}

// tryLoad starts the planner found in dir and dispenses its interface. Every
// failure mode comes back as an error; nothing escapes the boundary.
func (l *Loader) tryLoad(dir string) (h *Handle, err error) {
	bin := filepath.Join(dir, BinaryName)
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}
	info, err := os.Stat(bin)
	if err != nil {
		return nil, fmt.Errorf("planner binary check failed: %w", err)
	}
	if !info.Mode().IsRegular() || (runtime.GOOS != "windows" && info.Mode()&0111 == 0) {
		return nil, ErrNotExecutable
	}

	cmd := exec.Command(bin)
	if l.Standalone {
		cmd.Args = append(cmd.Args, "-standalone")
	}
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  HandshakeConfig(),
		Plugins:          PluginMap(nil),
		Cmd:              cmd,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolNetRPC},
		Logger:           pluginLogger(l.Debug),
	})
	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("planner connect failed: %w", err)
	}
	raw, err := rpcClient.Dispense(PluginName)
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("planner dispense failed: %w", err)
	}
	impl, ok := raw.(FlightPlanner)
	if !ok {
		client.Kill()
		return nil, fmt.Errorf("binary %s does not implement the planner interface", bin)
	}
	return &Handle{Planner: impl, Dir: dir, client: client}, nil
}

func pluginLogger(debug bool) hclog.Logger {
	level := hclog.Error
	output := io.Discard
	if debug {
		level = hclog.Debug
		output = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "aw-planner",
		Level:  level,
		Output: output,
	})
}
