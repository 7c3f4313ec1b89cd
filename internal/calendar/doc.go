// Package calendar reads events from Google Calendar for availability
// searches.
//
// A Client lists the expanded single instances of every event in a time
// window and converts them into availability.RawEvent values, which the
// finder classifies per calendar owner.
//
// Example usage:
//
//	client, err := calendar.NewClient(ctx, "default", provider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	events, err := client.Events(ctx, "alice@example.com", from, to)
package calendar
