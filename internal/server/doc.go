// Package server はzariサービスのHTTPサーバー実装を提供する。
//
// OAuth認証（GitHub/Google）によるサインイン、セッションCookieの発行と検証、
// byeol（ユーザー）リソースとzodiac（黄道十二宮）参照リソースの提供を担当する。
// 外部からアクセス可能な唯一の層であり、認証の境界線として機能する。
package server
