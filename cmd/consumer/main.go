// The consumer folds load lifecycle events into the Redis counters behind
// the dispatch board, so status totals stay live without the API re-counting
// loads on every poll.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/events"
	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/models"
)

var (
	msgsConsumed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "board_consumer_messages_consumed_total",
		Help: "Total load events consumed",
	})
	msgsInvalid = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "board_consumer_messages_invalid_total",
		Help: "Total invalid messages received",
	})
	boardUpdates = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "board_consumer_redis_updates_total",
		Help: "Total successful board updates",
	})
	boardErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "board_consumer_redis_errors_total",
		Help: "Total redis errors",
	})
)

func init() {
	prometheus.MustRegister(msgsConsumed, msgsInvalid, boardUpdates, boardErrors)
}

const statusCountsKey = "board:status_counts"

func loadKey(id int64) string { return "board:load:" + strconv.FormatInt(id, 10) }

func main() {
	// allow some flags for local runs
	var metricsAddr string
	flag.StringVar(&metricsAddr, "metrics-addr", ":2112", "address to serve prometheus metrics on")
	flag.Parse()

	brokersEnv := os.Getenv("KAFKA_BROKERS")
	if brokersEnv == "" {
		brokersEnv = os.Getenv("KAFKA_BROKER")
	}
	brokers := []string{}
	if brokersEnv != "" {
		for _, b := range strings.Split(brokersEnv, ",") {
			if s := strings.TrimSpace(b); s != "" {
				brokers = append(brokers, s)
			}
		}
	} else {
		brokers = []string{"localhost:9092"}
	}

	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = "load-events"
	}
	group := os.Getenv("KAFKA_GROUP")
	if group == "" {
		group = "board-consumer"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	rc := redis.NewClient(&redis.Options{Addr: redisAddr})
	radapter := &redisAdapter{c: rc}

	// start metrics and health server
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
		mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			// readiness: check redis connectivity
			if err := rc.Ping(r.Context()).Err(); err != nil {
				http.Error(w, "redis not ready", 503)
				return
			}
			w.WriteHeader(200)
			w.Write([]byte("ready"))
		})
		log.Printf("metrics/health listening on %s", metricsAddr)
		if err := http.ListenAndServe(metricsAddr, mux); err != nil {
			log.Printf("metrics server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := kafka.NewReader(kafka.ReaderConfig{Brokers: brokers, Topic: topic, GroupID: group, MinBytes: 10e3, MaxBytes: 10e6})
	defer func() {
		_ = r.Close()
		_ = rc.Close()
	}()

	log.Printf("board consumer listening topic=%s brokers=%v group=%s", topic, brokers, group)

	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("shutting down consumer")
				return
			}
			log.Printf("kafka read error: %v; backing off %s", err, backoff)
			time.Sleep(backoff)
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}
		// reset backoff on success
		backoff = time.Second

		msgsConsumed.Inc()

		var ev models.LoadEvent
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			msgsInvalid.Inc()
			log.Printf("invalid message: %v", err)
			continue
		}

		if err := updateBoardWithRetry(ctx, radapter, ev, 3, 200*time.Millisecond); err != nil {
			boardErrors.Inc()
			log.Printf("board update failed for load=%d: %v", ev.Load.ID, err)
			continue
		}
		boardUpdates.Inc()
	}
}

// BoardUpdater defines the small subset of redis operations we need for
// tests and production.
type BoardUpdater interface {
	HGet(ctx context.Context, key, field string) (string, error)
	HSet(ctx context.Context, key string, values map[string]interface{}) error
	HIncrBy(ctx context.Context, key, field string, incr int64) error
	Del(ctx context.Context, key string) error
}

type redisAdapter struct{ c *redis.Client }

func (r *redisAdapter) HGet(ctx context.Context, key, field string) (string, error) {
	v, err := r.c.HGet(ctx, key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return v, err
}

func (r *redisAdapter) HSet(ctx context.Context, key string, values map[string]interface{}) error {
	_, err := r.c.HSet(ctx, key, values).Result()
	return err
}

func (r *redisAdapter) HIncrBy(ctx context.Context, key, field string, incr int64) error {
	_, err := r.c.HIncrBy(ctx, key, field, incr).Result()
	return err
}

func (r *redisAdapter) Del(ctx context.Context, key string) error {
	_, err := r.c.Del(ctx, key).Result()
	return err
}

// updateBoard applies one load event to the board counters. The per-load
// hash remembers the last status seen so counter moves stay balanced when a
// load transitions.
func updateBoard(ctx context.Context, rc BoardUpdater, ev models.LoadEvent) error {
	prev, err := rc.HGet(ctx, loadKey(ev.Load.ID), "status")
	if err != nil {
		return err
	}

	if ev.Type == events.LoadDeleted {
		if prev != "" {
			if err := rc.HIncrBy(ctx, statusCountsKey, prev, -1); err != nil {
				return err
			}
		}
		return rc.Del(ctx, loadKey(ev.Load.ID))
	}

	if prev != ev.Load.Status {
		if prev != "" {
			if err := rc.HIncrBy(ctx, statusCountsKey, prev, -1); err != nil {
				return err
			}
		}
		if err := rc.HIncrBy(ctx, statusCountsKey, ev.Load.Status, 1); err != nil {
			return err
		}
	}
	return rc.HSet(ctx, loadKey(ev.Load.ID), map[string]interface{}{
		"status":         ev.Load.Status,
		"payment_status": ev.Load.PaymentStatus,
		"driver_id":      ev.Load.DriverID,
	})
}

// updateBoardWithRetry applies the event with retry/backoff; transient redis
// errors should not drop counter moves.
func updateBoardWithRetry(ctx context.Context, rc BoardUpdater, ev models.LoadEvent, attempts int, delay time.Duration) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = updateBoard(ctx, rc, ev); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		time.Sleep(delay)
		delay *= 2
	}
	return err
}
