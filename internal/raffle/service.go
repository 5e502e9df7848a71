package raffle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/compose-network/lottery-entrance/configs"
	"github.com/compose-network/lottery-entrance/internal/infra/filesystem"
	"github.com/compose-network/lottery-entrance/internal/logger"
	"github.com/compose-network/lottery-entrance/internal/notify"
	"github.com/compose-network/lottery-entrance/internal/raffle/addresses"
	"github.com/compose-network/lottery-entrance/internal/raffle/contract"
	"github.com/compose-network/lottery-entrance/internal/raffle/metrics"
	"github.com/compose-network/lottery-entrance/internal/raffle/view"
	"github.com/compose-network/lottery-entrance/internal/wallet"
	"github.com/ethereum/go-ethereum/common"
)

const metricsShutdownTimeout = 5 * time.Second

// Service wires a wallet session, the address table and a raffle view for one CLI
// command.
type Service struct {
	reader filesystem.Reader
	writer filesystem.Writer
	out    io.Writer
	logger *slog.Logger
}

func NewService(reader filesystem.Reader, writer filesystem.Writer, out io.Writer) *Service {
	return &Service{
		reader: reader,
		writer: writer,
		out:    out,
		logger: logger.Named("raffle_service"),
	}
}

// Status mounts the view once, renders it and, when outPath is set, writes the
// snapshot as JSON.
func (s *Service) Status(ctx context.Context, cfg configs.Config, outPath string) error {
	session, table, err := s.open(ctx, cfg)
	if err != nil {
		return err
	}
	defer session.Close()

	v := s.newView(cfg, table, session, notify.NewLogSink(s.logger))
	if err := s.mount(ctx, v, session); err != nil {
		return err
	}
	defer v.Unmount()

	if err := v.Render(s.out); err != nil {
		return fmt.Errorf("failed to render raffle view: %w", err)
	}

	if outPath != "" {
		if err := s.writer.WriteJSON(outPath, v.Snapshot()); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
		s.logger.With("path", outPath).Info("raffle snapshot written")
	}

	return nil
}

// Enter pays the current entrance fee and renders the refreshed view.
func (s *Service) Enter(ctx context.Context, cfg configs.Config) error {
	session, table, err := s.open(ctx, cfg)
	if err != nil {
		return err
	}
	defer session.Close()

	if !session.CanSign() {
		return fmt.Errorf("wallet.private-key is required to submit transactions: %w", wallet.ErrNoSigner)
	}
	s.logger.With("account", session.Address().Hex()).Info("entering raffle")

	recorder := &notify.Recorder{}
	v := s.newView(cfg, table, session, notify.Fanout{notify.NewLogSink(s.logger), recorder})
	if err := s.mount(ctx, v, session); err != nil {
		return err
	}
	defer v.Unmount()

	if !v.Supported() {
		return v.Render(s.out)
	}

	result := v.SubmitEntry(ctx)
	if result.Err != nil {
		return fmt.Errorf("failed to enter raffle: %w", result.Err)
	}

	fmt.Fprintf(s.out, "Entered with transaction %s\n", result.TxHash.Hex())
	for _, n := range recorder.Sent() {
		fmt.Fprintf(s.out, "%s: %s\n", n.Title, n.Message)
	}

	return v.Render(s.out)
}

// Watch keeps the view mounted until ctx is done, rendering after every refresh. With
// the WinnerPicked listener not re-armed it returns after the first winner.
func (s *Service) Watch(ctx context.Context, cfg configs.Config) error {
	if cfg.Metrics.Addr != "" {
		server := metrics.NewServer(cfg.Metrics.Addr)
		go func() {
			s.logger.With("addr", cfg.Metrics.Addr).Info("serving metrics")
			if err := server.Start(); err != nil {
				s.logger.With("err", err).Error("metrics server stopped")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
			defer cancel()
			if err := server.Stop(shutdownCtx); err != nil {
				s.logger.With("err", err).Warn("failed to stop metrics server")
			}
		}()
	}

	session, table, err := s.open(ctx, cfg)
	if err != nil {
		return err
	}
	defer session.Close()

	var v *view.View
	v = s.newView(cfg, table, session, notify.NewLogSink(s.logger),
		view.WithRefreshHook(func(view.State) {
			if err := v.Render(s.out); err != nil {
				s.logger.With("err", err).Warn("failed to render raffle view")
			}
		}),
	)
	if err := s.mount(ctx, v, session); err != nil {
		return err
	}
	defer v.Unmount()

	if !v.Supported() {
		return v.Render(s.out)
	}

	waiter := v.SubscribeWinnerPicked(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("stopping raffle watch")
			return nil
		case err, ok := <-waiter:
			if !ok {
				return nil
			}
			if err != nil {
				s.logger.With("err", err).Error("winner handling failed")
			}
			if !cfg.Raffle.RearmWinnerListener {
				return err
			}
		}
	}
}

func (s *Service) open(ctx context.Context, cfg configs.Config) (*wallet.Session, addresses.Table, error) {
	table, err := addresses.Load(s.reader, cfg.Raffle.AddressesFile)
	if err != nil {
		return nil, addresses.Table{}, fmt.Errorf("failed to load raffle addresses: %w", err)
	}

	session, err := wallet.Dial(ctx, cfg.Network.RPCURL, cfg.Wallet.PrivateKey)
	if err != nil {
		return nil, addresses.Table{}, fmt.Errorf("failed to open wallet session: %w", err)
	}

	return session, table, nil
}

func (s *Service) newView(cfg configs.Config, table addresses.Table, session *wallet.Session, notifier notify.Sink, opts ...view.Option) *view.View {
	factory := func(address common.Address) (view.Contract, error) {
		c, err := contract.New(address, session.Client(), session, contract.Options{
			PollInterval: cfg.Raffle.PollInterval,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	return view.New(view.Config{
		Addresses:           table,
		Confirmations:       uint64(cfg.Raffle.Confirmations),
		RearmWinnerListener: cfg.Raffle.RearmWinnerListener,
		QueryTimeout:        cfg.Raffle.QueryTimeout,
	}, factory, notifier, opts...)
}

// mount treats a failed initial refresh as a warning; the view then shows its
// initial values until the next refresh.
func (s *Service) mount(ctx context.Context, v *view.View, session *wallet.Session) error {
	err := v.Mount(ctx, session)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, view.ErrInitialRefresh):
		s.logger.With("err", err).Warn("raffle state unavailable, showing initial values")
		return nil
	default:
		return fmt.Errorf("failed to mount raffle view: %w", err)
	}
}
