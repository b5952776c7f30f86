// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package telemetry_test

import (
	"context"
	"testing"

	"github.com/blinklabs-io/actiongate/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func restoreGlobalTracerProvider(t *testing.T) {
	t.Helper()
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
}

func TestSetupDisabledWithoutEndpoint(t *testing.T) {
	restoreGlobalTracerProvider(t)
	before := otel.GetTracerProvider()
	shutdown, err := telemetry.Setup(
		context.Background(),
		telemetry.Config{ServiceName: "actiongate", SampleRatio: 1},
	)
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	assert.Equal(t, before, otel.GetTracerProvider())
}

func TestSetupInstallsProvider(t *testing.T) {
	restoreGlobalTracerProvider(t)
	// Non-routable address: nothing is exported because no span is ended
	shutdown, err := telemetry.Setup(
		context.Background(),
		telemetry.Config{
			ServiceName:    "actiongate",
			ServiceVersion: "test",
			Endpoint:       "http://192.0.2.1:4318",
			SampleRatio:    1,
		},
	)
	require.NoError(t, err)
	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok, "global tracer provider is %T", otel.GetTracerProvider())
	require.NoError(t, shutdown(context.Background()))
}

func TestSetupInvalidConfig(t *testing.T) {
	restoreGlobalTracerProvider(t)
	testDefs := []telemetry.Config{
		{Endpoint: "http://192.0.2.1:4318", SampleRatio: 1},
		{ServiceName: "actiongate", Endpoint: "http://192.0.2.1:4318", SampleRatio: -0.1},
		{ServiceName: "actiongate", Endpoint: "http://192.0.2.1:4318", SampleRatio: 1.5},
	}
	for _, testDef := range testDefs {
		shutdown, err := telemetry.Setup(context.Background(), testDef)
		if err == nil {
			t.Fatalf("expected error for config %+v", testDef)
		}
		if shutdown == nil {
			t.Fatalf("expected non-nil shutdown for config %+v", testDef)
		}
	}
}
