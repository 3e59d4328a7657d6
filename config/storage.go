package config

import "os"

// S3Config holds the avatar bucket settings. Avatar upload is disabled when
// the bucket is unset.
type S3Config struct {
	Bucket    string
	Region    string
	PublicURL string
}

// Enabled reports whether avatar storage is configured.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

func loadS3Config() S3Config {
	return S3Config{
		Bucket:    os.Getenv("S3_BUCKET"),
		Region:    getEnv("S3_REGION", "us-east-1"),
		PublicURL: os.Getenv("S3_PUBLIC_URL"),
	}
}
