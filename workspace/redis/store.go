package redis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/geange/des"
	"github.com/geange/des/internal/presentation/graph"
	"github.com/geange/des/workspace"
	backend "github.com/redis/go-redis/v9"
)

const (
	fieldModel  = "model"
	fieldLayout = "layout"
	fieldSaved  = "saved"
)

// Store implements workspace.Sink using Redis. Each model is a hash holding its YAML encoding, its
// layout and its saved flag; a set indexes the model names.
type Store struct {
	client *backend.Client
	prefix string
}

type Option func(*Store)

// WithPrefix sets the key prefix for models.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis workspace with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis workspace from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "des:workspace:",
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

var _ workspace.Sink = (*Store)(nil)

func (s *Store) key(name string) string {
	return s.prefix + "model:" + name
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

func encode(a *des.Automaton) (string, string, error) {
	if err := a.Validate(); err != nil {
		return "", "", err
	}
	var buf bytes.Buffer
	if err := des.WriteYAML(&buf, a); err != nil {
		return "", "", err
	}
	return buf.String(), graph.GenerateMermaid(a), nil
}

func (s *Store) Add(ctx context.Context, a *des.Automaton) error {
	model, layout, err := encode(a)
	if err != nil {
		return err
	}

	// The model hash and its index entry are written in one transaction, guarded by a watch on the hash.
	key := s.key(a.Name)
	err = s.client.Watch(ctx, func(tx *backend.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("failed to get from redis: %w", err)
		}
		if n > 0 {
			return fmt.Errorf("%w: %q", workspace.ErrModelExists, a.Name)
		}
		_, err = tx.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
			pipe.HSet(ctx, key, fieldModel, model, fieldLayout, layout, fieldSaved, "0")
			pipe.SAdd(ctx, s.indexKey(), a.Name)
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to save to redis: %w", err)
		}
		return nil
	}, key)
	if errors.Is(err, backend.TxFailedErr) {
		return fmt.Errorf("%w: %q", workspace.ErrModelExists, a.Name)
	}
	return err
}

func (s *Store) Remove(ctx context.Context, name string) error {
	saved, err := s.client.HGet(ctx, s.key(name), fieldSaved).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return fmt.Errorf("%w: %q", workspace.ErrUnknownModel, name)
		}
		return fmt.Errorf("failed to get from redis: %w", err)
	}
	if saved != "1" {
		return fmt.Errorf("%w: %q", workspace.ErrUnsaved, name)
	}
	return s.drop(ctx, name)
}

func (s *Store) drop(ctx context.Context, name string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.Del(ctx, s.key(name))
		pipe.SRem(ctx, s.indexKey(), name)
		return nil
	})
	return err
}

func (s *Store) Replace(ctx context.Context, name string, a *des.Automaton) error {
	model, layout, err := encode(a)
	if err != nil {
		return err
	}

	present, err := s.client.SIsMember(ctx, s.indexKey(), name).Result()
	if err != nil {
		return fmt.Errorf("failed to get from redis: %w", err)
	}
	if !present {
		return fmt.Errorf("%w: %q", workspace.ErrUnknownModel, name)
	}
	if a.Name != name {
		taken, err := s.client.SIsMember(ctx, s.indexKey(), a.Name).Result()
		if err != nil {
			return fmt.Errorf("failed to get from redis: %w", err)
		}
		if taken {
			return fmt.Errorf("%w: %q", workspace.ErrModelExists, a.Name)
		}
	}

	_, err = s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.Del(ctx, s.key(name))
		pipe.SRem(ctx, s.indexKey(), name)
		pipe.HSet(ctx, s.key(a.Name), fieldModel, model, fieldLayout, layout, fieldSaved, "0")
		pipe.SAdd(ctx, s.indexKey(), a.Name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

func (s *Store) NotifySaved(ctx context.Context, name string) error {
	n, err := s.client.Exists(ctx, s.key(name)).Result()
	if err != nil {
		return fmt.Errorf("failed to get from redis: %w", err)
	}
	if n == 0 {
		return nil
	}
	return s.client.HSet(ctx, s.key(name), fieldSaved, "1").Err()
}

func (s *Store) field(ctx context.Context, name, field string) (string, error) {
	val, err := s.client.HGet(ctx, s.key(name), field).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return "", fmt.Errorf("%w: %q", workspace.ErrUnknownModel, name)
		}
		return "", fmt.Errorf("failed to get from redis: %w", err)
	}
	return val, nil
}

func (s *Store) Get(ctx context.Context, name string) (*des.Automaton, error) {
	val, err := s.field(ctx, name, fieldModel)
	if err != nil {
		return nil, err
	}
	return des.ReadYAML(strings.NewReader(val))
}

func (s *Store) Layout(ctx context.Context, name string) (string, error) {
	return s.field(ctx, name, fieldLayout)
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	slices.Sort(names)
	return names, nil
}

func (s *Store) Clear(ctx context.Context) error {
	names, err := s.List(ctx)
	if err != nil {
		return err
	}
	keys := []string{s.indexKey()}
	for _, name := range names {
		keys = append(keys, s.key(name))
	}
	return s.client.Del(ctx, keys...).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
