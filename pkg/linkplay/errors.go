/*
 * Copyright 2026 Airtone HQ
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package linkplay

import "errors"

var (
	ErrDeviceNotRegistered = errors.New("device is not registered")
	ErrVolumeOutOfRange    = errors.New("volume level must be between 0 and 100")
	ErrCommandUnanswered   = errors.New("device did not answer command")
)
