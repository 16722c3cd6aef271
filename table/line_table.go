package table

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	k "github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/kafka-go-streams/stringslice"
	log "github.com/sirupsen/logrus"
)

// LineHandler receives one stripped, non-empty line of a message value. Both
// slices are only valid during the call.
type LineHandler func(key, line stringslice.Slice)

// LineTableConfig configures a LineTable.
type LineTableConfig struct {
	Store   *Store
	Brokers string
	Topic   string
	Handler LineHandler
	Context context.Context
	Logger  *log.Logger
}

// LineTable mirrors a topic into a Store and feeds every line of every
// message value to a handler.
type LineTable struct {
	store    *Store
	consumer *k.Consumer
	handler  LineHandler
	log      *LogWrapper
	ctx      context.Context
	cancel   context.CancelFunc
	finished chan struct{}
}

func NewLineTable(config *LineTableConfig) (*LineTable, error) {
	if config.Store == nil {
		return nil, errors.New("line table needs a store")
	}
	consumer, err := k.NewConsumer(&k.ConfigMap{
		"bootstrap.servers":  config.Brokers,
		"group.id":           "stringslice-line-table",
		"enable.auto.commit": false,
	})
	if err != nil {
		return nil, err
	}

	err = restoreOffsets(config.Store, consumer, config.Topic)
	if err != nil {
		consumer.Close()
		return nil, err
	}

	ctx := config.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	lt := &LineTable{
		store:    config.Store,
		consumer: consumer,
		handler:  config.Handler,
		log:      &LogWrapper{config.Logger},
		ctx:      ctx,
		cancel:   cancel,
		finished: make(chan struct{}),
	}
	go lt.run()
	return lt, nil
}

func restoreOffsets(store *Store, consumer *k.Consumer, topic string) error {
	meta, err := consumer.GetMetadata(&topic, false, 1000)
	if err != nil {
		return err
	}
	topicMeta, ok := meta.Topics[topic]
	if !ok {
		return errors.New("Topic is not known to the broker")
	}
	assignment := make([]k.TopicPartition, len(topicMeta.Partitions))
	for i, p := range topicMeta.Partitions {
		offset, err := getOffset(store, p.ID)
		if err != nil {
			return err
		}
		assignment[i] = k.TopicPartition{
			Topic:     &topic,
			Partition: p.ID,
			Offset:    offset,
		}
	}
	return consumer.Assign(assignment)
}

func partitionKey(partition int32) string {
	return fmt.Sprintf("partition-offset-%v", partition)
}

func getOffset(store *Store, partition int32) (k.Offset, error) {
	p, err := store.Get([]byte(partitionKey(partition)))
	if errors.Is(err, ErrNotFound) {
		return k.OffsetBeginning, nil
	}
	if err != nil {
		return 0, err
	}
	defer p.Release()
	intOffset, err := strconv.ParseInt(p.String(), 0, 64)
	return k.Offset(intOffset), err
}

// errorBackoff is how long run waits after a failed read before polling
// again.
const errorBackoff = 2 * time.Second

// wait sleeps for d and reports false if the table was closed meanwhile.
func (lt *LineTable) wait(d time.Duration) bool {
	select {
	case <-lt.ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

func (lt *LineTable) run() {
	defer close(lt.finished)
	for {
		select {
		case <-lt.ctx.Done():
			return
		default:
		}
		msg, err := lt.consumer.ReadMessage(time.Second)
		if err != nil {
			var kerr k.Error
			if !errors.As(err, &kerr) || kerr.Code() != k.ErrTimedOut {
				lt.log.log(log.ErrorLevel, "Error receiving message: %v", err)
				if !lt.wait(errorBackoff) {
					return
				}
			}
			continue
		}
		if err := lt.handleMessage(msg); err != nil {
			lt.log.log(log.ErrorLevel, "Failed to handle message at %v: %v", msg.TopicPartition, err)
		}
	}
}

// handleMessage stores the message value, splits it into lines for the
// handler and records the next offset to read for its partition.
func (lt *LineTable) handleMessage(msg *k.Message) error {
	if err := lt.store.Put(msg.Key, msg.Value); err != nil {
		return err
	}
	key := stringslice.Of(msg.Key)
	lines := 0
	for line := range stringslice.Lines(stringslice.Of(msg.Value)) {
		line = line.Strip()
		if line.Empty() {
			continue
		}
		lines++
		if lt.handler != nil {
			lt.handler(key, line)
		}
	}
	lt.log.logFields(log.DebugLevel, log.Fields{
		"key":       key.String(),
		"partition": msg.TopicPartition.Partition,
		"offset":    msg.TopicPartition.Offset,
		"lines":     lines,
	}, "Handled message")

	next := strconv.FormatInt(int64(msg.TopicPartition.Offset)+1, 10)
	return lt.store.Put([]byte(partitionKey(msg.TopicPartition.Partition)), []byte(next))
}

// Get returns a view over the latest value stored for key. See Store.Get.
func (lt *LineTable) Get(key []byte) (*stringslice.Pinned, error) {
	return lt.store.Get(key)
}

// Close stops consuming and closes the consumer. The store stays open.
func (lt *LineTable) Close() error {
	lt.cancel()
	<-lt.finished
	return lt.consumer.Close()
}
