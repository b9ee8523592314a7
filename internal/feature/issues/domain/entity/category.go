package entity

// CategoryCount はラベルごとの出現回数を、最初に出現した順で保持します。
// ラベルとカウントは1回の走査で同時に構築されるため、両者の並びは常に一致します。
type CategoryCount struct {
	labels []string
	counts []int
	index  map[string]int
}

// NewCategoryCount は空のCategoryCountを生成します。
func NewCategoryCount() *CategoryCount {
	return &CategoryCount{index: map[string]int{}}
}

// Add はラベルの出現回数を1増やします。
func (c *CategoryCount) Add(label string) {
	if i, ok := c.index[label]; ok {
		c.counts[i]++
		return
	}
	c.index[label] = len(c.labels)
	c.labels = append(c.labels, label)
	c.counts = append(c.counts, 1)
}

// Labels はx軸のビュー（ラベル一覧）を返します。
func (c *CategoryCount) Labels() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

// Counts はy軸のビュー（カウント一覧）を返します。
func (c *CategoryCount) Counts() []int {
	out := make([]int, len(c.counts))
	copy(out, c.counts)
	return out
}

// Count は指定ラベルのカウントを返します。存在しない場合は0です。
func (c *CategoryCount) Count(label string) int {
	if i, ok := c.index[label]; ok {
		return c.counts[i]
	}
	return 0
}

// Len は異なるラベルの数を返します。
func (c *CategoryCount) Len() int {
	return len(c.labels)
}

// Sum はカウントの合計を返します。
func (c *CategoryCount) Sum() int {
	sum := 0
	for _, n := range c.counts {
		sum += n
	}
	return sum
}
