package util

import "fmt"

// GradeLevel 根据年龄计算年级段。对任意整数都有定义：
// 5 岁以下为学前段，5 岁为幼儿园，18 岁及以上封顶为 13
func GradeLevel(age int) int {
	if age < 5 {
		return 0
	}
	if age == 5 {
		return 1
	}
	if age >= 18 {
		return 13
	}
	return age - 5
}

// GradeLevelLabel 年级段的展示文案，Grade N 比段位值小 1
// （6 岁 → 段位 1 → Kindergarten，7 岁 → 段位 2 → Grade 1）
func GradeLevelLabel(level int) string {
	switch level {
	case 0:
		return "Preschool"
	case 1:
		return "Kindergarten"
	}
	return fmt.Sprintf("Grade %d", level-1)
}
