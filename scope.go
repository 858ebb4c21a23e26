package tinify

// WithClient creates a client for the key, passes it to fn and closes it
// when fn returns or panics.
func WithClient(key string, fn func(Client) error, args ...Option) (err error) {
	var c Client

	if c, err = NewClient(key, args...); err != nil {
		return err
	}

	defer c.Close()

	return fn(c)
}
