package thumbworker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"file-manager-api/config"
	"file-manager-api/internal/application/ports"
	"file-manager-api/internal/domain/filenode"
	"file-manager-api/internal/infrastructure/blob"
	"file-manager-api/internal/infrastructure/mq"
)

// one job in flight per worker
const preFetchCount = 1

// Widths is the fixed derivative set; exactly one derivative exists
// per (node, width) pair.
var Widths = []int{500, 250, 100}

var (
	errMissingFileID = errors.New("missing fileId")
	errMissingUserID = errors.New("missing userId")
	errFileNotFound  = errors.New("file not found")
)

type Worker struct {
	cfg        config.MQ
	log        *zap.Logger
	nodes      filenode.Repository
	content    ports.ContentStore
	mCounter   *prometheus.CounterVec
	conn       *amqp091.Connection
	chConsume  *amqp091.Channel
	chDelivery <-chan amqp091.Delivery
}

func New(
	cfg config.MQ,
	logger *zap.Logger,
	nodes filenode.Repository,
	content ports.ContentStore,
	mCounter *prometheus.CounterVec,
) *Worker {
	return &Worker{
		cfg:      cfg,
		log:      logger,
		nodes:    nodes,
		content:  content,
		mCounter: mCounter,
	}
}

func (w *Worker) Connect(dsn string) error {
	var err error
	w.conn, err = amqp091.Dial(dsn)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	w.chConsume, err = w.conn.Channel()
	if err != nil {
		_ = w.conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}

	w.log.Info("thumbnail worker connected successfully")

	return nil
}

func (w *Worker) Init() error {
	var err error
	if err = w.chConsume.ExchangeDeclare(
		w.cfg.Exchange,
		w.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err = w.chConsume.QueueDeclare(
		w.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	if err = w.chConsume.QueueBind(
		w.cfg.QueueName,
		mq.RoutingKeyThumbnail,
		w.cfg.Exchange,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue bind: %w", err)
	}

	if err = w.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	w.chDelivery, err = w.chConsume.Consume(
		w.cfg.QueueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	return nil
}

// DeliveryWorker consumes one job at a time until the context ends.
// Failed jobs are terminal: logged, counted, nack'd without requeue.
func (w *Worker) DeliveryWorker(ctx context.Context) {
	w.log.Info("starting thumbnail worker")

	defer func() {
		w.log.Info("thumbnail worker gracefully stopped")
	}()

	for {
		select {
		case msg := <-w.chDelivery:
			if err := w.ProcessJob(ctx, msg.Body); err != nil {
				w.log.Error("thumbnail job failed",
					zap.String("message_id", msg.MessageId),
					zap.Error(err),
				)
				if w.mCounter != nil {
					w.mCounter.WithLabelValues("thumbnail_jobs_failed_total").Inc()
				}
				_ = msg.Nack(false, false)
				continue
			}
			if w.mCounter != nil {
				w.mCounter.WithLabelValues("thumbnail_jobs_processed_total").Inc()
			}
			_ = msg.Ack(false)
		case <-ctx.Done():
			w.chConsume.Close()
			return
		}
	}
}

// ProcessJob renders every width for one job. All three derivatives
// must land or the job fails as a whole; rerunning overwrites them in
// place, so reprocessing is safe.
func (w *Worker) ProcessJob(ctx context.Context, body []byte) error {
	var job mq.ThumbnailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("decode job: %w", err)
	}

	if job.FileID == "" {
		return errMissingFileID
	}
	if job.UserID == "" {
		return errMissingUserID
	}
	fileID, err := uuid.Parse(job.FileID)
	if err != nil {
		return fmt.Errorf("%w: %w", errMissingFileID, err)
	}
	userID, err := uuid.Parse(job.UserID)
	if err != nil {
		return fmt.Errorf("%w: %w", errMissingUserID, err)
	}

	node, err := w.nodes.FetchOwned(ctx, fileID, userID)
	if err != nil {
		return fmt.Errorf("fetch node: %w", err)
	}
	if node == nil {
		return errFileNotFound
	}

	data, err := w.content.Load(ctx, node.StoragePath)
	if err != nil {
		return fmt.Errorf("load original: %w", err)
	}
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	format, err := imaging.FormatFromFilename(node.Name)
	if err != nil {
		format = imaging.JPEG
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, width := range Widths {
		width := width
		g.Go(func() error {
			thumb := imaging.Resize(src, width, 0, imaging.Lanczos)

			var buf bytes.Buffer
			if err := imaging.Encode(&buf, thumb, format); err != nil {
				return fmt.Errorf("encode %dpx: %w", width, err)
			}
			if err := w.content.SaveAt(ctx, blob.DerivativePath(node.StoragePath, width), buf.Bytes()); err != nil {
				return fmt.Errorf("save %dpx: %w", width, err)
			}
			return nil
		})
	}

	return g.Wait()
}
