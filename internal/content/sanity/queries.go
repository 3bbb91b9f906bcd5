package sanity

import "fmt"

const articleProjection = `{
  _id,
  title,
  slug,
  publishedAt,
  summary,
  category,
  source,
  sourceUrl,
  tags,
  likes,
  dislikes,
  saves
}`

func feedQuery(withCategory bool, limit int) string {
	filter := `_type == "article" && ($lastPublishedAt == null || publishedAt < $lastPublishedAt)`
	if withCategory {
		filter = `_type == "article" && category == $category && ($lastPublishedAt == null || publishedAt < $lastPublishedAt)`
	}
	return fmt.Sprintf(`*[%s] | order(publishedAt desc) [0...%d] %s`, filter, limit, articleProjection)
}

const articleBySlugQuery = `*[_type == "article" && slug.current == $slug][0]`

func relatedQuery(limit int) string {
	return fmt.Sprintf(`*[_type == "article" && _id != $currentId] | order(publishedAt desc) [0...%d] {
  _id,
  title,
  slug,
  publishedAt,
  summary,
  category,
  source
}`, limit)
}

const previousQuery = `*[_type == "article" && publishedAt < $publishedAt] | order(publishedAt desc)[0] {
  _id,
  title,
  slug,
  publishedAt
}`

const nextQuery = `*[_type == "article" && publishedAt > $publishedAt] | order(publishedAt asc)[0] {
  _id,
  title,
  slug,
  publishedAt
}`

const siteSettingsQuery = `*[_type == "siteSettings"][0]`

func tweetsQuery(limit int) string {
	return fmt.Sprintf(`*[_type == "tweet"] | order(publishedAt desc) [0...%d]`, limit)
}
