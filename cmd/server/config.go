package main

import "time"

type Config struct {
	Host           string `env:"HOST,default=0.0.0.0"`
	Port           int    `env:"PORT,default=3002"`
	LogLevel       string `env:"LOG_LEVEL,default=info"`
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	JWTSecret      string `env:"JWT_SECRET,required=true"`

	AuthCacheSize int `env:"AUTH_CACHE_SIZE,default=1024"`

	TypingSweepInterval time.Duration `env:"TYPING_SWEEP_INTERVAL,default=2s"`
	TypingIdleThreshold time.Duration `env:"TYPING_IDLE_THRESHOLD,default=5s"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}
