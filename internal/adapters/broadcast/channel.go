// Package broadcast propagates completion toasts between concurrently
// running ZenFlowz instances of the same user. The channel is an
// append-only JSONL file in the shared data directory: every instance
// appends its messages and tails the file with a filesystem watcher,
// skipping lines it wrote itself. Delivery is best-effort with no
// ordering guarantees; receivers only display the toast.
package broadcast

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/ForgeBytez-Official/ZenFlowz/internal/domain"
	"github.com/ForgeBytez-Official/ZenFlowz/internal/ports"
)

// ChannelName is the shared channel every instance posts to.
const ChannelName = "zenflowz_notifications"

// messageTypeToast is the only message type on the wire.
const messageTypeToast = "SHOW_TOAST"

// message is the wire format.
type message struct {
	Type    string       `json:"type"`
	Payload toastPayload `json:"payload"`
	Sender  string       `json:"sender"`
}

type toastPayload struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Channel implements ports.Broadcaster over a shared file. A Channel
// that failed to set up its watcher degrades to post-only; one that
// could not even open the file degrades to a full no-op. Neither case
// surfaces an error to the caller.
type Channel struct {
	path   string
	sender string

	mu      sync.Mutex
	handler func(domain.Toast)
	offset  int64

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

// Ensure Channel implements ports.Broadcaster.
var _ ports.Broadcaster = (*Channel)(nil)

// Open joins the named channel in the given directory. Setup failures
// degrade silently: the returned channel still satisfies the port but
// may not deliver.
func Open(dir, name string) *Channel {
	c := &Channel{
		path:   filepath.Join(dir, name+".jsonl"),
		sender: uuid.New().String(),
		done:   make(chan struct{}),
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return c
	}

	// Touch the file so the watcher has something to attach to, and
	// start tailing from its current end — older messages are not replayed.
	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return c
	}
	if info, err := f.Stat(); err == nil {
		c.offset = info.Size()
	}
	f.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return c
	}
	if err := watcher.Add(c.path); err != nil {
		watcher.Close()
		return c
	}
	c.watcher = watcher

	c.wg.Add(1)
	go c.watch()

	return c
}

// Post appends a toast to the channel file.
func (c *Channel) Post(toast domain.Toast) error {
	msg := message{
		Type:    messageTypeToast,
		Payload: toastPayload{Message: toast.Message, Type: toast.Type},
		Sender:  c.sender,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(data)
	return err
}

// Subscribe installs the receive handler. The handler runs on the
// watcher goroutine and replaces any previous handler.
func (c *Channel) Subscribe(fn func(domain.Toast)) {
	c.mu.Lock()
	c.handler = fn
	c.mu.Unlock()
}

// Close tears down the watcher.
func (c *Channel) Close() error {
	select {
	case <-c.done:
		return nil
	default:
	}
	close(c.done)
	if c.watcher != nil {
		c.watcher.Close()
	}
	c.wg.Wait()
	return nil
}

// watch tails the channel file and delivers foreign messages.
func (c *Channel) watch() {
	defer c.wg.Done()

	for {
		select {
		case <-c.done:
			return
		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write != 0 {
				c.readNew()
			}
		case _, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// readNew decodes every line appended since the last read and hands
// foreign toasts to the subscriber. Unparsable lines are skipped.
func (c *Channel) readNew() {
	c.mu.Lock()
	offset := c.offset
	handler := c.handler
	c.mu.Unlock()

	f, err := os.Open(c.path)
	if err != nil {
		return
	}
	defer f.Close()

	if _, err := f.Seek(offset, 0); err != nil {
		return
	}

	scanner := bufio.NewScanner(f)
	read := offset
	var toasts []domain.Toast
	for scanner.Scan() {
		line := scanner.Bytes()
		read += int64(len(line)) + 1

		var msg message
		if err := json.Unmarshal(line, &msg); err != nil {
			continue
		}
		if msg.Type != messageTypeToast || msg.Sender == c.sender {
			continue
		}
		toasts = append(toasts, domain.Toast{
			Message: msg.Payload.Message,
			Type:    msg.Payload.Type,
		})
	}

	c.mu.Lock()
	c.offset = read
	c.mu.Unlock()

	if handler == nil {
		return
	}
	for _, t := range toasts {
		handler(t)
	}
}
