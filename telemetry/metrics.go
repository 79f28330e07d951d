package telemetry

import (
	"github.com/armon/go-metrics"
)

const relayMetricsPrefix = "relay"

func UpdateRelayEventsReceivedCounter(chain string, cnt int) {
	metrics.IncrCounter([]string{relayMetricsPrefix, "events_received_counter", chain}, float32(cnt))
}

func UpdateRelayEventsInvalidCounter(chain string, cnt int) {
	metrics.IncrCounter([]string{relayMetricsPrefix, "events_invalid_counter", chain}, float32(cnt))
}

func UpdateRelayEventsReplayedCounter(chain string, cnt int) {
	metrics.IncrCounter([]string{relayMetricsPrefix, "events_replayed_counter", chain}, float32(cnt))
}

func UpdateRelaySubmissionSucceeded(chain string) {
	metrics.IncrCounter([]string{relayMetricsPrefix, "submission_succeeded_counter", chain}, 1)
}

func UpdateRelaySubmissionFailed(chain string) {
	metrics.IncrCounter([]string{relayMetricsPrefix, "submission_failed_counter", chain}, 1)
}

func UpdateRelayHeadBlock(chain string, blockNumber uint64) {
	metrics.SetGauge([]string{relayMetricsPrefix, "head_block", chain}, float32(blockNumber))
}

func UpdateRelayLastScannedBlock(chain string, blockNumber uint64) {
	metrics.SetGauge([]string{relayMetricsPrefix, "last_scanned_block", chain}, float32(blockNumber))
}
