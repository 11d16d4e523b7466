// Package redis connects to Redis with retries. The dashboard uses it when
// FLASH_BACKEND=redis so queued toasts survive across instances.
package redis
