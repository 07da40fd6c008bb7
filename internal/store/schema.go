package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	sessionEventsTableName = "session_events"
	trialEventsTableName   = "trial_events"
)

var (
	sessionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "subject", Type: field.TypeString},
		{Name: "condition", Type: field.TypeString},
		{Name: "action", Type: field.TypeString},
		{Name: "resume_trial_index", Type: field.TypeInt, Default: 0},
		{Name: "trials_run", Type: field.TypeInt, Default: 0},
	}
	sessionEventsTable = &schema.Table{
		Name:       sessionEventsTableName,
		Columns:    sessionEventsColumns,
		PrimaryKey: []*schema.Column{sessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_session_id", Columns: []*schema.Column{sessionEventsColumns[3]}},
		},
	}

	trialEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "subject", Type: field.TypeString},
		{Name: "condition", Type: field.TypeString},
		{Name: "trial_index", Type: field.TypeInt},
		{Name: "card", Type: field.TypeString},
		{Name: "pellets", Type: field.TypeInt},
		{Name: "background_touches", Type: field.TypeInt},
		{Name: "video_touches", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
	}
	trialEventsTable = &schema.Table{
		Name:       trialEventsTableName,
		Columns:    trialEventsColumns,
		PrimaryKey: []*schema.Column{trialEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "trialevent_subject_condition", Columns: []*schema.Column{trialEventsColumns[4], trialEventsColumns[5]}},
		},
	}

	tables = []*schema.Table{sessionEventsTable, trialEventsTable}
)
