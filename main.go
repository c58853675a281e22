// main.go
// Copyright (c) 2026 Ichijo Hodaka
// tune555: 555 シンセ用 コンデンサ & トリム計算機
// - 108 音それぞれについて、E24 のコンデンサ値とトリム抵抗の設定を探す
// - トリム可動範囲で届く周波数区間に音が入れば採用し、最も近いトリムを掃引で求める
// - 結果はテキスト表（既定 tune_triple_fives.txt）、TSV、xlsx に保存できる
//
// 表示は小数第 2 位

package main

import "github.com/ichijohodaka/tune555/cmd"

func main() {
	cmd.Execute()
}
