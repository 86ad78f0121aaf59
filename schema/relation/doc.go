// Package relation provides builders for model relation declarations.
//
// Relations connect two models by name. The owning side of the key
// depends on the kind:
//
//	relation.BelongsTo("author", "User")            // FK authorId on the declaring model
//	relation.HasMany("posts", "Post").Inverse("author")
//	relation.HasOne("profile", "Profile")
//	relation.ManyToMany("tags", "Tag")              // implicit canonical junction
//	relation.ManyToMany("tags", "Tag").
//		Through("ItemTag", "itemId", "tagId")       // explicit junction, used verbatim
package relation
