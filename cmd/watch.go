package cmd

import (
	"context"
	"time"

	"github.com/Layr-Labs/rewards-claimer/internal/tracer"
	"github.com/Layr-Labs/rewards-claimer/pkg/eventBus/eventBusTypes"
	"github.com/Layr-Labs/rewards-claimer/pkg/metrics/prometheus"
	"github.com/Layr-Labs/rewards-claimer/pkg/shutdown"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultWatchInterval = 10 * time.Minute

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Periodically recompute the pending claims of an account and report them as metrics and logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		account, err := accountFromFlags(cmd)
		if err != nil {
			return err
		}
		interval, _ := cmd.Flags().GetDuration(intervalFlag)
		if interval <= 0 {
			interval = defaultWatchInterval
		}

		c, err := newClaimer(cmd.Name())
		if err != nil {
			return err
		}
		defer c.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := c.ensureNetwork(ctx); err != nil {
			return err
		}

		consumer := eventBusTypes.NewConsumer(ctx, 16)
		c.eventBus.Subscribe(consumer)
		defer c.eventBus.Unsubscribe(consumer)
		go logEvents(ctx, consumer, c.logger)

		promChan := make(chan bool)
		if c.config.PrometheusConfig.Enabled {
			pServer := prometheus.NewPrometheusServer(&prometheus.PrometheusServerConfig{
				Port: c.config.PrometheusConfig.Port,
			}, c.logger)
			if err := pServer.Start(promChan); err != nil {
				c.logger.Sugar().Errorw("Failed to start prometheus server", zap.Error(err))
				return err
			}
		}

		stopped := make(chan struct{})
		go func() {
			defer close(stopped)
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				refresh(ctx, c, account)
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
				}
			}
		}()

		c.logger.Sugar().Infow("Watching pending claims",
			zap.String("account", account),
			zap.Duration("interval", interval),
		)

		gracefulShutdown := shutdown.CreateGracefulShutdownChannel()
		done := make(chan bool)
		shutdown.ListenForShutdown(gracefulShutdown, done, func() {
			c.logger.Sugar().Info("Shutting down...")
			cancel()
			<-stopped
			if c.config.PrometheusConfig.Enabled {
				promChan <- true
			}
		}, time.Second*5, c.logger)
		return nil
	},
}

func refresh(ctx context.Context, c *claimer, account string) {
	defer tracer.DiscardFinishedSpans()

	uc, err := c.claims.GetUserClaims(ctx, c.config.Network, account)
	if err != nil {
		if ctx.Err() == nil {
			c.logger.Sugar().Errorw("Failed to refresh user claims", zap.Error(err))
		}
		return
	}
	for _, p := range uc.PendingClaims {
		c.logger.Sugar().Infow("Pending claims",
			zap.String("token", p.TokenClaimInfo.Label),
			zap.Int("weeks", len(p.Claims)),
			zap.String("availableToClaim", p.AvailableToClaim),
		)
	}
	if uc.CurrentRewardsEstimate != nil {
		c.logger.Sugar().Infow("Current rewards estimate",
			zap.String("rewards", uc.CurrentRewardsEstimate.Rewards),
			zap.String("velocity", uc.CurrentRewardsEstimate.Velocity),
		)
	}
	c.sink.Flush()
}

func logEvents(ctx context.Context, consumer *eventBusTypes.Consumer, l *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-consumer.Channel:
			l.Sugar().Debugw("Event",
				zap.String("id", e.Id),
				zap.String("name", string(e.Name)),
				zap.Time("timestamp", e.Timestamp),
			)
		}
	}
}
