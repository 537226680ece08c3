package mcpserver

// PlanningGuide describes how notes become events so LLM consumers call the
// tools in a valid order.
const PlanningGuide = `# Clav-Cal Planning Guide

Clav-Cal plans content on a calendar. Ideas live as **notes** in a scratch
list; scheduled content lives as **events** on calendar days.

## Note lifecycle

` + "```" + `text
idea ──► workshop ──► ready ──► used
  ▲         │  ▲        │  ▲      │
  └─────────┘  └────────┘  └──────┘
` + "```" + `

1. A new note starts as ` + "`idea`" + `. Attaching a collaborator profile moves it to ` + "`workshop`" + `.
2. ` + "`workshop`" + ` → ` + "`ready`" + ` is an explicit approval.
3. Only ` + "`ready`" + ` notes can be scheduled. Scheduling marks the note ` + "`used`" + `.
4. Unscheduling an event created from a note returns the note to ` + "`ready`" + `.
5. Demoting a ` + "`ready`" + ` note goes to ` + "`workshop`" + ` when it has collaborators,
   otherwise to ` + "`idea`" + `.
6. ` + "`transition_note`" + ` never enters or leaves ` + "`used`" + `; only scheduling and
   unscheduling do.

## Times

- Dates are ` + "`YYYY-MM-DD`" + `. Times are 24-hour ` + "`HH:MM`" + `; ` + "`24:00`" + ` is the end of the day.
- Ranges are half-open: 09:00-10:00 and 10:00-11:00 do not overlap.
- A scheduled note without a start time starts at the configured default
  (10:00) and lasts the default duration (60 minutes).

## Tools

- ` + "`list_events`" + `, ` + "`get_conflicts`" + `: read the calendar.
- ` + "`list_notes`" + `, ` + "`create_note`" + `, ` + "`transition_note`" + `: manage ideas.
- ` + "`schedule_note`" + `, ` + "`unschedule_event`" + `: move ideas on and off the calendar.
- ` + "`plan_summary`" + `: plain-text plan for a day, week or month.
`
