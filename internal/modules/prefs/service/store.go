package service

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("prefs not found")

// HostChatID — строка настроек самого хоста: локальный звук и язык stdout.
// Телеграм-чаты всегда ненулевые.
const HostChatID int64 = 0

// Prefs — настройки чата: язык и звук. Решения сюда не пишем.
type Prefs struct {
	ChatID       int64  `json:"chat_id"`
	Language     string `json:"language"`
	SoundEnabled bool   `json:"sound_enabled"`
}

type Store interface {
	Get(ctx context.Context, chatID int64) (Prefs, error)
	Save(ctx context.Context, p Prefs) error
}

// GetOr — Get с дефолтом для нового чата.
func GetOr(ctx context.Context, s Store, chatID int64, def Prefs) (Prefs, error) {
	p, err := s.Get(ctx, chatID)
	if errors.Is(err, ErrNotFound) {
		def.ChatID = chatID
		return def, nil
	}
	return p, err
}
