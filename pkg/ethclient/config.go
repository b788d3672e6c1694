/*
 * Copyright © 2026 Intuition Systems, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
 * the License. You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
 * an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
 * specific language governing permissions and limitations under the License.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package ethclient

import (
	"github.com/0xIntuition/intuition-go/internal/confutil"
	"github.com/0xIntuition/intuition-go/internal/rpcclient"
)

type Config struct {
	HTTP              rpcclient.HTTPConfig `yaml:"http"`
	WS                rpcclient.WSConfig   `yaml:"ws"`
	EstimateGasFactor *float64             `yaml:"estimateGasFactor"`
}

var Defaults = &Config{
	EstimateGasFactor: confutil.P(1.5),
}
