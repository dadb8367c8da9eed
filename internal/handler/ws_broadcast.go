package handler

// BroadcastCampaignEvent implements service.Broadcaster using the WebSocket hub.
func (h *Hub) BroadcastCampaignEvent(campaignID string, eventType string, data any) {
	h.BroadcastToCampaign(campaignID, WSEvent{
		Type:       eventType,
		CampaignID: campaignID,
		Data:       data,
	})
}
