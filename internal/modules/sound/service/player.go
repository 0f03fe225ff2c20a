package service

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Player — звук на покупку/продажу.
type Player interface {
	Play(ctx context.Context) error
}

// Nop — звук выключен в конфиге.
type Nop struct{}

func (Nop) Play(context.Context) error { return nil }

// CommandPlayer запускает внешний плеер: "<command...> <file>".
type CommandPlayer struct {
	name string
	args []string
	file string
}

func NewCommandPlayer(command, file string) (*CommandPlayer, error) {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return nil, errors.New("sound command is empty")
	}
	if file == "" {
		return nil, errors.New("sound file is empty")
	}
	return &CommandPlayer{name: parts[0], args: parts[1:], file: file}, nil
}

func (p *CommandPlayer) Play(ctx context.Context) error {
	if _, err := os.Stat(p.file); err != nil {
		return errors.Wrapf(err, "sound file %s", p.file)
	}
	args := append(append([]string{}, p.args...), p.file)
	out, err := exec.CommandContext(ctx, p.name, args...).CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "%s: %s", p.name, strings.TrimSpace(string(out)))
	}
	return nil
}
