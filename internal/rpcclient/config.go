// Copyright © 2026 Intuition Systems, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rpcclient

import (
	"context"
	"net/url"

	"github.com/0xIntuition/intuition-go/internal/confutil"
	"github.com/0xIntuition/intuition-go/internal/msgs"
	"github.com/go-resty/resty/v2"
	"github.com/hyperledger/firefly-common/pkg/ffresty"
	"github.com/hyperledger/firefly-common/pkg/fftls"
	"github.com/hyperledger/firefly-common/pkg/fftypes"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/wsclient"
)

type ConfigAuth struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type HTTPConfig struct {
	URL         string                 `yaml:"url"`
	HTTPHeaders map[string]interface{} `yaml:"httpHeaders"`
	Auth        ConfigAuth             `yaml:"auth"`
	TLS         fftls.Config           `yaml:"tls"`
}

type RetryConfig struct {
	InitialDelay *string  `yaml:"initialDelay"`
	MaxDelay     *string  `yaml:"maxDelay"`
	Factor       *float64 `yaml:"factor"`
}

type WSConfig struct {
	HTTPConfig             `yaml:",inline"`
	InitialConnectAttempts *int        `yaml:"initialConnectAttempts"`
	ConnectionTimeout      *string     `yaml:"connectionTimeout"`
	ConnectRetry           RetryConfig `yaml:"connectRetry"`
	ReadBufferSize         *string     `yaml:"readBufferSize"`
	WriteBufferSize        *string     `yaml:"writeBufferSize"`
	HeartbeatInterval      *string     `yaml:"heartbeatInterval"`
}

var DefaultWSConfig = &WSConfig{
	ReadBufferSize:         confutil.P("16Kb"),
	WriteBufferSize:        confutil.P("16Kb"),
	InitialConnectAttempts: confutil.P(0),
	ConnectionTimeout:      confutil.P("30s"),
	HeartbeatInterval:      confutil.P("15s"),
	ConnectRetry: RetryConfig{
		InitialDelay: confutil.P("250ms"),
		MaxDelay:     confutil.P("30s"),
		Factor:       confutil.P(2.0),
	},
}

func ParseWSConfig(ctx context.Context, config *WSConfig) (*wsclient.WSConfig, error) {
	u, err := url.Parse(config.URL)
	if err != nil || (u.Scheme != "ws" && u.Scheme != "wss") {
		return nil, i18n.WrapError(ctx, err, msgs.MsgRPCClientInvalidWebSocketURL, config.URL)
	}
	if u.Scheme == "wss" {
		config.TLS.Enabled = true
	}
	tlsConfig, err := fftls.NewTLSConfig(ctx, &config.TLS, fftls.ClientType)
	if err != nil {
		return nil, err
	}
	return &wsclient.WSConfig{
		WebSocketURL:           u.String(),
		HTTPHeaders:            fftypes.JSONObject(config.HTTPHeaders),
		ReadBufferSize:         int(confutil.ByteSize(config.ReadBufferSize, 0, confutil.ByteSize(DefaultWSConfig.ReadBufferSize, 0, 16384))),
		WriteBufferSize:        int(confutil.ByteSize(config.WriteBufferSize, 0, confutil.ByteSize(DefaultWSConfig.WriteBufferSize, 0, 16384))),
		ConnectionTimeout:      confutil.DurationMin(config.ConnectionTimeout, 0, confutil.Duration(DefaultWSConfig.ConnectionTimeout, 0)),
		InitialDelay:           confutil.DurationMin(config.ConnectRetry.InitialDelay, 0, confutil.Duration(DefaultWSConfig.ConnectRetry.InitialDelay, 0)),
		MaximumDelay:           confutil.DurationMin(config.ConnectRetry.MaxDelay, 0, confutil.Duration(DefaultWSConfig.ConnectRetry.MaxDelay, 0)),
		HeartbeatInterval:      confutil.DurationMin(config.HeartbeatInterval, 0, confutil.Duration(DefaultWSConfig.HeartbeatInterval, 0)),
		AuthUsername:           config.Auth.Username,
		AuthPassword:           config.Auth.Password,
		TLSClientConfig:        tlsConfig,
		InitialConnectAttempts: confutil.IntMin(config.InitialConnectAttempts, 0, *DefaultWSConfig.InitialConnectAttempts),
	}, nil
}

func ParseHTTPConfig(ctx context.Context, config *HTTPConfig) (*resty.Client, error) {
	u, err := url.Parse(config.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, i18n.WrapError(ctx, err, msgs.MsgRPCClientInvalidHTTPURL, config.URL)
	}
	if u.Scheme == "https" {
		config.TLS.Enabled = true
	}
	tlsConfig, err := fftls.NewTLSConfig(ctx, &config.TLS, fftls.ClientType)
	if err != nil {
		return nil, err
	}
	restyConf := ffresty.Config{
		URL: u.String(),
		HTTPConfig: ffresty.HTTPConfig{
			HTTPHeaders:     fftypes.JSONObject(config.HTTPHeaders),
			AuthUsername:    config.Auth.Username,
			AuthPassword:    config.Auth.Password,
			TLSClientConfig: tlsConfig,
		},
	}
	return ffresty.NewWithConfig(ctx, restyConf), nil
}
