// Package config reads the ambient environment into an explicit Settings
// struct once per invocation. Components receive Settings by value and never
// consult the environment themselves.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Settings is the full configuration surface. Every field has a default;
// an empty optional value disables the feature it belongs to.
type Settings struct {
	HomeRegion           string
	MaxFreeEBSGiB        int32
	AllowedInstanceTypes []string
	AllowedDBClasses     []string
	TopicARN             string
	DiscordWebhookURL    string
	SlackWebhookURL      string
	ServerHost           string
	ServerPort           string
}

// Load reads Settings from the environment, applying defaults for anything
// unset.
func Load() Settings {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HOME_REGION", "us-east-1")
	v.SetDefault("MAX_FREE_EBS_GB", 30)
	v.SetDefault("ALLOWED_INSTANCE_TYPES", "t2.micro,t3.micro")
	v.SetDefault("ALLOWED_DB_CLASSES", "db.t2.micro,db.t3.micro")
	v.SetDefault("SNS_TOPIC_ARN", "")
	v.SetDefault("DISCORD_WEBHOOK_URL", "")
	v.SetDefault("SLACK_WEBHOOK_URL", "")
	v.SetDefault("SERVER_HOST", "localhost")
	v.SetDefault("SERVER_PORT", "8080")

	return Settings{
		HomeRegion:           v.GetString("HOME_REGION"),
		MaxFreeEBSGiB:        v.GetInt32("MAX_FREE_EBS_GB"),
		AllowedInstanceTypes: splitList(v.GetString("ALLOWED_INSTANCE_TYPES")),
		AllowedDBClasses:     splitList(v.GetString("ALLOWED_DB_CLASSES")),
		TopicARN:             v.GetString("SNS_TOPIC_ARN"),
		DiscordWebhookURL:    v.GetString("DISCORD_WEBHOOK_URL"),
		SlackWebhookURL:      v.GetString("SLACK_WEBHOOK_URL"),
		ServerHost:           v.GetString("SERVER_HOST"),
		ServerPort:           v.GetString("SERVER_PORT"),
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
