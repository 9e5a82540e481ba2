// Package messaging publishes platform state to observers over Redis and
// accepts a small set of external commands. It is the userspace
// equivalent of the attribute notifications a platform driver would send
// through sysfs.
package messaging

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"qc71-service/internal/logger"
	"qc71-service/internal/types"
)

const (
	platformHash    = "platform"
	platformChannel = "platform"

	profileCommandList = "platform:profile"
)

type Callbacks struct {
	// ProfileCycleCallback handles an external request to advance the fan
	// profile ring (command "cycle" on the profile list).
	ProfileCycleCallback func() error
}

type Client struct {
	client    *redis.Client
	callbacks Callbacks
	logger    *logger.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func NewClient(host string, port int, l *logger.Logger, callbacks Callbacks) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		client: redis.NewClient(&redis.Options{
			Addr: fmt.Sprintf("%s:%d", host, port),
			DB:   0,
		}),
		callbacks: callbacks,
		logger:    l,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (c *Client) Connect() error {
	c.logger.Infof("Attempting to connect to Redis at %s", c.client.Options().Addr)

	if err := c.client.Ping(c.ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection failed: %w", err)
	}
	c.logger.Infof("Successfully connected to Redis")
	return nil
}

// StartListening starts the command listeners. Called once the platform
// system is fully initialized.
func (c *Client) StartListening() {
	c.wg.Add(1)
	go c.listCommandListener(profileCommandList, c.handleProfileCommand)
}

func (c *Client) listCommandListener(key string, handler func(string) error) {
	defer c.wg.Done()
	c.logger.Infof("Starting list command listener for %s", key)

	for {
		select {
		case <-c.ctx.Done():
			c.logger.Infof("Context cancelled, exiting %s listener", key)
			return
		default:
			// BRPOP with a short timeout so context cancellation is
			// noticed between commands.
			result, err := c.client.BRPop(c.ctx, 5*time.Second, key).Result()
			if err != nil {
				if err == redis.Nil {
					continue
				}
				if c.ctx.Err() != nil {
					return
				}
				c.logger.Warnf("Error reading from %s list: %v", key, err)
				continue
			}

			if len(result) >= 2 { // BRPOP returns [key, value]
				value := result[1]
				c.logger.Debugf("Received command from %s: %s", key, value)
				if err := handler(value); err != nil {
					c.logger.Warnf("Error handling %s command: %v", key, err)
				}
			}
		}
	}
}

func (c *Client) handleProfileCommand(value string) error {
	if c.callbacks.ProfileCycleCallback == nil {
		return nil
	}
	switch value {
	case "cycle":
		return c.callbacks.ProfileCycleCallback()
	default:
		return fmt.Errorf("invalid profile command: %s", value)
	}
}

// publishHashSet atomically updates a hash field and publishes a
// notification.
func (c *Client) publishHashSet(hash, field string, value interface{}, channel, payload string) error {
	pipe := c.client.Pipeline()
	pipe.HSet(c.ctx, hash, field, value)
	pipe.Publish(c.ctx, channel, payload)
	_, err := pipe.Exec(c.ctx)
	return err
}

// NotifyAttribute signals observers that the named platform attribute
// changed. Fire-and-forget: callers log failures and move on.
func (c *Client) NotifyAttribute(name string) error {
	timestamp := time.Now().Format(time.RFC3339)
	return c.publishHashSet(platformHash, name+":timestamp", timestamp, platformChannel, name)
}

func (c *Client) PublishProfile(profile types.Profile) error {
	c.logger.Infof("Publishing fan profile: %s", profile)
	return c.publishHashSet(platformHash, "profile", string(profile), platformChannel, "profile")
}

func (c *Client) PublishKeyboardBacklight(brightness int) error {
	c.logger.Debugf("Publishing keyboard backlight brightness: %d", brightness)
	return c.publishHashSet(platformHash, "kbd_backlight:brightness", brightness,
		platformChannel, "kbd_backlight")
}

func (c *Client) Close() error {
	c.cancel()
	c.wg.Wait()
	return c.client.Close()
}
