package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// Summary holds the schema definition for the Summary entity.
type Summary struct {
	ent.Schema
}

func (Summary) Mixin() []ent.Mixin {
	return []ent.Mixin{
		mixin.Time{},
	}
}

// Fields of the Summary.
func (Summary) Fields() []ent.Field {
	return []ent.Field{
		field.Time("summary_date").Comment("摘要日期"),
		field.Text("content").Comment("摘要内容，失败时为哨兵文本"),
		field.Enum("status").
			Values("ok", "failed", "empty").
			Default("ok").
			Comment("摘要状态：ok=正常生成, failed=生成失败, empty=当日无消息"),
	}
}

// Indexes of the Summary.
func (Summary) Indexes() []ent.Index {
	return []ent.Index{
		// 唯一索引：每天只保留一条摘要
		index.Fields("summary_date").Unique(),
	}
}
