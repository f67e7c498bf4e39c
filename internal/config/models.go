package config

import "time"

// SMTPConfig represents the configuration for the SMTP submission
type SMTPConfig struct {
	Server   string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// ReplyConfig represents the configuration for reply composition
type ReplyConfig struct {
	ServiceName string
	BodyHeader  string
	BodyFooter  string
}

// SyslogConfig represents the optional syslog sink configuration
type SyslogConfig struct {
	Socket   string
	Facility string
}

// GetSMTP returns the SMTP configuration. An invalid timeout string falls
// back to 30 seconds.
func (c *Config) GetSMTP() SMTPConfig {
	timeout, err := c.GetDuration("smtp_timeout")
	if err != nil || timeout <= 0 {
		timeout = 30 * time.Second
	}
	return SMTPConfig{
		Server:   c.GetString("smtp_server"),
		Port:     c.GetInt("smtp_port"),
		Username: c.GetString("smtp_username"),
		Password: c.GetString("smtp_password"),
		Timeout:  timeout,
	}
}

// GetReply returns the reply composition configuration
func (c *Config) GetReply() ReplyConfig {
	return ReplyConfig{
		ServiceName: c.GetString("service_name"),
		BodyHeader:  c.GetString("reply_body_header"),
		BodyFooter:  c.GetString("reply_body_footer"),
	}
}

// GetSyslog returns the syslog sink configuration
func (c *Config) GetSyslog() SyslogConfig {
	return SyslogConfig{
		Socket:   c.GetString("syslog_socket"),
		Facility: c.GetString("syslog_facility"),
	}
}

// SendEmail reports whether replies are transmitted over SMTP or written
// to stdout (dry-run mode).
func (c *Config) SendEmail() bool {
	return c.GetBool("send_email")
}

// MaxMessageSize returns the inbound message size bound in bytes
func (c *Config) MaxMessageSize() int64 {
	return c.GetInt64("max_message_size")
}
