// SPDX-License-Identifier: MIT
package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys shared by spans across packages.
const (
	ChannelIDKey    = "guide.channel_id"
	ChannelKindKey  = "guide.channel_kind"
	ScheduleIDKey   = "guide.schedule_id"
	EntriesKey      = "guide.entries"
	ChannelsKey     = "guide.channels"
	ConcurrencyKey  = "guide.concurrency"
	RevisionKey     = "sounds.revision"
	DeliveryOpKey   = "iptv.operation"
	DeliveryPortKey = "iptv.port"
	ErrorTypeKey    = "error.type"
)

// GuideAttributes describes one guide build.
func GuideAttributes(tvChannels, radioChannels, concurrency int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(ChannelsKey, tvChannels+radioChannels),
		attribute.Int(ChannelsKey+".tv", tvChannels),
		attribute.Int(ChannelsKey+".radio", radioChannels),
		attribute.Int(ConcurrencyKey, concurrency),
	}
}

// ChannelAttributes describes the fetch of one channel's schedule.
func ChannelAttributes(channelID, kind string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(ChannelIDKey, channelID),
		attribute.String(ChannelKindKey, kind),
	}
}

// DeliveryAttributes describes a push to IPTV Manager.
func DeliveryAttributes(operation string, port int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(DeliveryOpKey, operation),
		attribute.Int(DeliveryPortKey, port),
	}
}
